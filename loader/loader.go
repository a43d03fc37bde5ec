// Package loader merges external unit, substance, inflation and exchange
// rate tables from JSON or YAML files over the built-in defaults.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"energyunits/config"
	"energyunits/economic"
	"energyunits/quantity"
	"energyunits/registry"
	"energyunits/substance"
)

// decode reads a file and unmarshals it by extension. JSON files use the
// encoding their upstream data sources ship in; everything else is YAML.
func decode(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read data file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("cannot parse JSON in %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cannot parse YAML in %s: %w", path, err)
	}
	return nil
}

type unitEntry struct {
	Unit      string  `yaml:"unit" json:"unit"`
	Dimension string  `yaml:"dimension" json:"dimension"`
	Factor    float64 `yaml:"factor" json:"factor"`
	// Reference defines the factor relative to an existing unit instead of
	// the dimension's base unit.
	Reference string `yaml:"reference,omitempty" json:"reference,omitempty"`
}

type unitsFile struct {
	Units         []unitEntry `yaml:"units" json:"units"`
	Corresponding [][]string  `yaml:"corresponding,omitempty" json:"corresponding,omitempty"`
}

// LoadUnits merges unit definitions into a catalog.
func LoadUnits(path string, catalog *registry.Catalog) error {
	var file unitsFile
	if err := decode(path, &file); err != nil {
		return err
	}
	for _, e := range file.Units {
		if e.Unit == "" {
			return fmt.Errorf("unit entry in %s is missing a symbol", path)
		}
		var err error
		if e.Reference != "" {
			err = catalog.AddUnitWithReference(e.Unit, e.Factor, e.Reference)
		} else {
			if e.Dimension == "" {
				return fmt.Errorf("unit %q in %s needs a dimension or a reference unit", e.Unit, path)
			}
			err = catalog.AddUnit(e.Unit, registry.Dimension(e.Dimension), e.Factor)
		}
		if err != nil {
			return fmt.Errorf("loading unit %q from %s: %w", e.Unit, path, err)
		}
	}
	for _, pair := range file.Corresponding {
		if len(pair) != 2 {
			return fmt.Errorf("corresponding entry %v in %s must name exactly two units", pair, path)
		}
		catalog.AddCorrespondingUnit(pair[0], pair[1])
	}
	return nil
}

type substanceEntry struct {
	Name            string   `yaml:"name" json:"name"`
	HHV             *float64 `yaml:"hhv" json:"hhv"`
	LHV             *float64 `yaml:"lhv" json:"lhv"`
	Density         *float64 `yaml:"density" json:"density"`
	Carbon          float64  `yaml:"carbon_content" json:"carbon_content"`
	Hydrogen        float64  `yaml:"hydrogen_content" json:"hydrogen_content"`
	Ash             float64  `yaml:"ash_content" json:"ash_content"`
	CarbonIntensity float64  `yaml:"carbon_intensity" json:"carbon_intensity"`
}

type substancesFile struct {
	Substances map[string]substanceEntry `yaml:"substances" json:"substances"`
}

// LoadSubstances merges substance definitions into a catalog.
func LoadSubstances(path string, catalog *substance.Catalog) error {
	var file substancesFile
	if err := decode(path, &file); err != nil {
		return err
	}
	for name, e := range file.Substances {
		props := substance.Properties{
			Name:            e.Name,
			HHV:             e.HHV,
			LHV:             e.LHV,
			Density:         e.Density,
			Carbon:          e.Carbon,
			Hydrogen:        e.Hydrogen,
			Ash:             e.Ash,
			CarbonIntensity: e.CarbonIntensity,
		}
		if err := catalog.Add(name, props); err != nil {
			return fmt.Errorf("loading substance from %s: %w", path, err)
		}
	}
	return nil
}

// yearSeries parses {"2020": 1.23} style maps. JSON requires string keys;
// YAML integer keys decode to strings as well.
func yearSeries(raw map[string]float64, source string) (map[int]float64, error) {
	out := make(map[int]float64, len(raw))
	for key, rate := range raw {
		year, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q in %s", key, source)
		}
		out[year] = rate
	}
	return out, nil
}

// LoadInflation merges annual inflation rates per currency. Keys starting
// with an underscore are metadata and skipped.
func LoadInflation(path string, table *economic.Inflation) error {
	var file map[string]map[string]float64
	if err := decode(path, &file); err != nil {
		return err
	}
	for currency, raw := range file {
		if strings.HasPrefix(currency, "_") {
			continue
		}
		series, err := yearSeries(raw, path)
		if err != nil {
			return err
		}
		table.Set(currency, series)
	}
	return nil
}

// LoadExchangeRates merges annual USD exchange rates per currency. Keys
// starting with an underscore are metadata and skipped.
func LoadExchangeRates(path string, table *economic.Exchange) error {
	var file map[string]map[string]float64
	if err := decode(path, &file); err != nil {
		return err
	}
	for currency, raw := range file {
		if strings.HasPrefix(currency, "_") {
			continue
		}
		series, err := yearSeries(raw, path)
		if err != nil {
			return err
		}
		table.Set(currency, series)
	}
	return nil
}

// Apply loads every data file named in the configuration into a system.
func Apply(data config.DataConfig, sys *quantity.System) error {
	if data.Units != "" {
		if err := LoadUnits(data.Units, sys.Units); err != nil {
			return err
		}
	}
	if data.Substances != "" {
		if err := LoadSubstances(data.Substances, sys.Substances); err != nil {
			return err
		}
	}
	if data.Inflation != "" {
		if err := LoadInflation(data.Inflation, sys.Inflation); err != nil {
			return err
		}
	}
	if data.ExchangeRates != "" {
		if err := LoadExchangeRates(data.ExchangeRates, sys.Exchange); err != nil {
			return err
		}
	}
	return nil
}
