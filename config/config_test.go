package config

import (
	"os"
	"strings"
	"testing"
)

// writeTempConfig creates a configuration file and returns its path.
func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "cfg-*.yml")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close temp file: %v", err)
	}
	return f.Name()
}

const minimalConfig = `app:
  name: "TestApp"
  version: "1.0"
conversion:
  default_basis: "LHV"
`

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, minimalConfig)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.App.Name != "TestApp" {
		t.Errorf("unexpected name: %s", cfg.App.Name)
	}
	if cfg.Conversion.DefaultBasis != "LHV" {
		t.Errorf("unexpected basis: %s", cfg.Conversion.DefaultBasis)
	}
	// Defaults apply when omitted.
	if cfg.Conversion.DefaultCurrency != "USD" {
		t.Errorf("unexpected default currency: %s", cfg.Conversion.DefaultCurrency)
	}
	if cfg.Conversion.DefaultHours != 1 {
		t.Errorf("unexpected default hours: %v", cfg.Conversion.DefaultHours)
	}
	if cfg.Export.Compression != "snappy" {
		t.Errorf("unexpected export compression: %s", cfg.Export.Compression)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing name",
			"app:\n  version: \"1.0\"\n",
			"app.name",
		},
		{
			"missing version",
			"app:\n  name: \"x\"\n",
			"app.version",
		},
		{
			"bad basis",
			"app:\n  name: \"x\"\n  version: \"1\"\nconversion:\n  default_basis: \"net\"\n",
			"default_basis",
		},
		{
			"export without directory",
			"app:\n  name: \"x\"\n  version: \"1\"\nexport:\n  enabled: true\n",
			"export.directory",
		},
		{
			"bad compression",
			"app:\n  name: \"x\"\n  version: \"1\"\nexport:\n  enabled: true\n  directory: \"/tmp\"\n  compression: \"zstd\"\n",
			"export.compression",
		},
		{
			"missing data file",
			"app:\n  name: \"x\"\n  version: \"1\"\ndata:\n  units: \"/nonexistent/units.json\"\n",
			"data.units",
		},
	}
	for _, c := range cases {
		path := writeTempConfig(t, c.content)
		_, err := LoadConfig(path)
		if err == nil || !strings.Contains(err.Error(), c.wantErr) {
			t.Errorf("%s: error = %v, want mention of %q", c.name, err, c.wantErr)
		}
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("ENERGYUNITS_EXPORT_DIR", "/data/export")
	t.Setenv("ENERGYUNITS_LOG_LEVEL", "debug")

	path := writeTempConfig(t, minimalConfig)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Export.Directory != "/data/export" {
		t.Errorf("export directory = %q", cfg.Export.Directory)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestAppEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	if env := AppEnvironment(); env != EnvironmentProduction {
		t.Errorf("AppEnvironment() = %q, want production", env)
	}
	if !IsProductionLike(EnvironmentStaging) {
		t.Error("staging should be production-like")
	}
	if IsProductionLike(EnvironmentDevelopment) {
		t.Error("development should not be production-like")
	}

	t.Setenv("APP_ENV", "")
	if env := AppEnvironment(); env != EnvironmentDevelopment {
		t.Errorf("AppEnvironment() default = %q, want development", env)
	}
}
