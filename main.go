package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"energyunits/config"
	"energyunits/loader"
	"energyunits/logger"
	"energyunits/quantity"
	"energyunits/substance"
	"energyunits/writer"
)

func parseValues(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", p)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no values given")
	}
	return values, nil
}

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	configPath := flag.String("config", "", "Path to configuration file")
	values := flag.String("value", "", "Value to convert, comma-separated for a series")
	fromUnit := flag.String("from", "", "Source unit")
	toUnit := flag.String("to", "", "Target unit")
	substanceName := flag.String("substance", "", "Substance context, e.g. coal or diesel")
	basisName := flag.String("basis", "", "Heating value basis of the input (HHV or LHV)")
	targetBasis := flag.String("to-basis", "", "Convert to this heating value basis")
	refYear := flag.Int("year", 0, "Reference year of the input value")
	hours := flag.Float64("hours", 0, "Duration in hours for power/energy conversions")
	emissions := flag.Bool("emissions", false, "Report CO2 emissions instead of converting")
	series := flag.String("series", "result", "Series name used for parquet export")

	flag.Parse()

	if *values == "" || *fromUnit == "" {
		fmt.Fprintln(os.Stderr, "usage: energyunits -value <v[,v...]> -from <unit> [-to <unit>] [options]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.WithError(err).Error("Failed to load configuration")
			os.Exit(1)
		}
		if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
			log.WithError(err).Error("Failed to configure logger")
			os.Exit(1)
		}
		log.WithFields(logger.Fields{
			"app":         cfg.App.Name,
			"version":     cfg.App.Version,
			"environment": config.AppEnvironment(),
		}).Debug("configuration loaded")
	}

	sys := quantity.Default()
	if err := loader.Apply(cfg.Data, sys); err != nil {
		log.WithError(err).Error("Failed to load data files")
		os.Exit(1)
	}

	vals, err := parseValues(*values)
	if err != nil {
		log.WithError(err).Error("Invalid input value")
		os.Exit(1)
	}

	var opts []quantity.Option
	if *substanceName != "" {
		opts = append(opts, quantity.WithSubstance(*substanceName))
	}
	inputBasis := *basisName
	if inputBasis == "" && *substanceName != "" {
		inputBasis = cfg.Conversion.DefaultBasis
	}
	if inputBasis != "" {
		b, err := substance.ParseBasis(inputBasis)
		if err != nil {
			log.WithError(err).Error("Invalid basis")
			os.Exit(1)
		}
		opts = append(opts, quantity.WithBasis(b))
	}
	if *refYear != 0 {
		opts = append(opts, quantity.WithReferenceYear(*refYear))
	}

	var q *quantity.Quantity
	if len(vals) == 1 {
		q, err = sys.New(vals[0], *fromUnit, opts...)
	} else {
		q, err = sys.NewSeries(vals, *fromUnit, opts...)
	}
	if err != nil {
		log.WithError(err).Error("Invalid quantity")
		os.Exit(1)
	}

	var result *quantity.Quantity
	switch {
	case *emissions:
		result, err = q.Emissions()
	default:
		var toOpts []quantity.Option
		if *targetBasis != "" {
			b, perr := substance.ParseBasis(*targetBasis)
			if perr != nil {
				log.WithError(perr).Error("Invalid target basis")
				os.Exit(1)
			}
			toOpts = append(toOpts, quantity.WithBasis(b))
		}
		effHours := *hours
		if effHours == 0 {
			effHours = cfg.Conversion.DefaultHours
		}
		if effHours != 0 {
			toOpts = append(toOpts, quantity.WithDuration(effHours))
		}
		result, err = q.To(*toUnit, toOpts...)
	}
	if err != nil {
		log.WithError(err).Error("Conversion failed")
		os.Exit(1)
	}

	fmt.Println(result.String())

	if cfg.Export.Enabled {
		exporter, err := writer.NewExporter(cfg.Export)
		if err != nil {
			log.WithError(err).Error("Failed to create exporter")
			os.Exit(1)
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := exporter.Start(ctx); err != nil {
			log.WithError(err).Error("Failed to start exporter")
			os.Exit(1)
		}
		if err := exporter.Export(*series, result); err != nil {
			log.WithError(err).Error("Failed to export result")
		}
		exporter.Stop()
	}
}
