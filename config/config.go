package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Data       DataConfig       `yaml:"data"`
	Conversion ConversionConfig `yaml:"conversion"`
	Export     ExportConfig     `yaml:"export"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// DataConfig points at optional table files merged over the built-in
// defaults. Units and substances load from JSON or YAML depending on the
// file extension.
type DataConfig struct {
	Units         string `yaml:"units"`
	Substances    string `yaml:"substances"`
	Inflation     string `yaml:"inflation"`
	ExchangeRates string `yaml:"exchange_rates"`
}

type ConversionConfig struct {
	// DefaultBasis is the heating value basis assumed when none is given,
	// "HHV" or "LHV". Empty leaves quantities unspecified.
	DefaultBasis string `yaml:"default_basis"`
	// DefaultCurrency is the currency assumed for bare cost figures.
	DefaultCurrency string `yaml:"default_currency"`
	// DefaultHours links power and energy when no duration is given.
	DefaultHours float64 `yaml:"default_hours"`
}

type ExportConfig struct {
	Enabled      bool               `yaml:"enabled"`
	Directory    string             `yaml:"directory"`
	Compression  string             `yaml:"compression"`
	BatchSize    int                `yaml:"batch_size"`
	FlushTimeout time.Duration      `yaml:"flush_timeout"`
	Partitioning PartitioningConfig `yaml:"partitioning"`
}

type PartitioningConfig struct {
	TimeFormat     string   `yaml:"time_format"`
	AdditionalKeys []string `yaml:"additional_keys"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

var validCompressions = map[string]bool{
	"": true, "none": true, "snappy": true, "gzip": true, "lzo": true,
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Config{
		Conversion: ConversionConfig{
			DefaultCurrency: "USD",
			DefaultHours:    1,
		},
		Export: ExportConfig{
			Compression: "snappy",
			BatchSize:   1000,
		},
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment overrides for deployment specific settings.
	if v := os.Getenv("ENERGYUNITS_EXPORT_DIR"); v != "" {
		config.Export.Directory = strings.TrimSpace(v)
	}
	if v := os.Getenv("ENERGYUNITS_LOG_LEVEL"); v != "" {
		config.Logging.Level = strings.TrimSpace(v)
	}

	config.Export.Directory = strings.TrimSpace(config.Export.Directory)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func validateConfig(cfg *Config) error {
	if cfg.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if cfg.App.Version == "" {
		return fmt.Errorf("app.version is required")
	}

	switch strings.ToUpper(cfg.Conversion.DefaultBasis) {
	case "", "HHV", "LHV":
	default:
		return fmt.Errorf("conversion.default_basis must be HHV or LHV, got %q", cfg.Conversion.DefaultBasis)
	}

	if cfg.Conversion.DefaultHours <= 0 {
		return fmt.Errorf("conversion.default_hours must be greater than 0")
	}

	if cfg.Export.Enabled {
		if cfg.Export.Directory == "" {
			return fmt.Errorf("export.directory is required when export is enabled")
		}
		if cfg.Export.BatchSize <= 0 {
			return fmt.Errorf("export.batch_size must be greater than 0")
		}
		if !validCompressions[cfg.Export.Compression] {
			return fmt.Errorf("export.compression %q is not supported", cfg.Export.Compression)
		}
	}

	for name, path := range map[string]string{
		"data.units":          cfg.Data.Units,
		"data.substances":     cfg.Data.Substances,
		"data.inflation":      cfg.Data.Inflation,
		"data.exchange_rates": cfg.Data.ExchangeRates,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%s file %q is not readable: %w", name, path, err)
		}
	}

	return nil
}
