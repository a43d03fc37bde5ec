// Package substance holds the fuel and material property catalog used for
// cross-dimension conversions: heating values, densities, and elemental
// composition for combustion stoichiometry.
package substance

import (
	"fmt"
	"sort"
	"sync"

	"energyunits/internal/similar"
)

// Basis selects which heating value a thermal energy figure refers to.
type Basis int

const (
	BasisUnspecified Basis = iota
	HHV
	LHV
)

func (b Basis) String() string {
	switch b {
	case HHV:
		return "HHV"
	case LHV:
		return "LHV"
	}
	return ""
}

// ParseBasis reads a basis tag from configuration or data files. The empty
// string means unspecified.
func ParseBasis(s string) (Basis, error) {
	switch s {
	case "":
		return BasisUnspecified, nil
	case "HHV", "hhv":
		return HHV, nil
	case "LHV", "lhv":
		return LHV, nil
	}
	return BasisUnspecified, fmt.Errorf("unknown heating value basis %q, want HHV or LHV", s)
}

// Properties describes one substance. Heating values are MJ/kg, density is
// kg/m3, and the composition fields are mass fractions. Nil heating values
// and density mean the property is not defined for the substance; a
// substance with neither heating value is non-combustible.
type Properties struct {
	Name     string
	HHV      *float64
	LHV      *float64
	Density  *float64
	Carbon   float64
	Hydrogen float64
	Ash      float64

	// CarbonIntensity is kg CO2 per MWh of fuel energy, used for quick
	// tabular emission estimates.
	CarbonIntensity float64
}

// Molar mass ratios for combustion products: CO2/C and H2O/H2.
const (
	co2PerCarbon   = 44.0 / 12.0
	h2oPerHydrogen = 18.0 / 2.0
)

// mjPerKgToMWhPerTonne converts heating values to base energy per base mass.
const mjPerKgToMWhPerTonne = 1000.0 / 3600.0

// UnknownSubstanceError reports a substance name missing from the catalog.
type UnknownSubstanceError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownSubstanceError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unknown substance %q (did you mean %s?)", e.Name, e.Suggestions[0])
	}
	return fmt.Sprintf("unknown substance %q", e.Name)
}

// MissingPropertyError reports a conversion that needs a property the
// substance does not define.
type MissingPropertyError struct {
	Substance string
	Property  string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("substance %q has no %s defined", e.Substance, e.Property)
}

// UnknownProductError reports an unsupported combustion product.
type UnknownProductError struct {
	Product string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unsupported combustion product %q, want CO2, H2O or ash", e.Product)
}

// Catalog is the substance registry. Lookups are read-only and safe for
// concurrent use.
type Catalog struct {
	mu         sync.RWMutex
	substances map[string]Properties
}

// NewCatalog returns an empty catalog. Most callers want DefaultCatalog.
func NewCatalog() *Catalog {
	return &Catalog{substances: make(map[string]Properties)}
}

// Get returns the properties of a substance.
func (c *Catalog) Get(name string) (Properties, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.substances[name]
	if !ok {
		return Properties{}, &UnknownSubstanceError{Name: name, Suggestions: c.suggest(name)}
	}
	return p, nil
}

// Has reports whether name is registered.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.substances[name]
	return ok
}

// HeatingValue returns the heating value in MJ/kg on the requested basis.
// BasisUnspecified resolves to LHV, the default basis for energy
// conversions.
func (c *Catalog) HeatingValue(name string, basis Basis) (float64, error) {
	p, err := c.Get(name)
	if err != nil {
		return 0, err
	}
	var hv *float64
	prop := "LHV"
	switch basis {
	case HHV:
		hv = p.HHV
		prop = "HHV"
	default:
		hv = p.LHV
	}
	if hv == nil {
		return 0, &MissingPropertyError{Substance: name, Property: prop}
	}
	return *hv, nil
}

// EnergyPerMass returns the heating value converted to MWh per tonne.
func (c *Catalog) EnergyPerMass(name string, basis Basis) (float64, error) {
	hv, err := c.HeatingValue(name, basis)
	if err != nil {
		return 0, err
	}
	return hv * mjPerKgToMWhPerTonne, nil
}

// Density returns the density in kg/m3.
func (c *Catalog) Density(name string) (float64, error) {
	p, err := c.Get(name)
	if err != nil {
		return 0, err
	}
	if p.Density == nil {
		return 0, &MissingPropertyError{Substance: name, Property: "density"}
	}
	return *p.Density, nil
}

// NonCombustible reports whether a substance defines no heating value at
// all, such as electricity sources.
func (c *Catalog) NonCombustible(name string) (bool, error) {
	p, err := c.Get(name)
	if err != nil {
		return false, err
	}
	return p.HHV == nil && p.LHV == nil, nil
}

// CombustionYield returns tonnes of product per tonne of fuel burned.
func (c *Catalog) CombustionYield(fuel, product string) (float64, error) {
	p, err := c.Get(fuel)
	if err != nil {
		return 0, err
	}
	switch product {
	case "CO2":
		return p.Carbon * co2PerCarbon, nil
	case "H2O":
		return p.Hydrogen * h2oPerHydrogen, nil
	case "ash":
		return p.Ash, nil
	}
	return 0, &UnknownProductError{Product: product}
}

// Add registers or replaces a substance after validating its properties.
func (c *Catalog) Add(name string, p Properties) error {
	if name == "" {
		return fmt.Errorf("substance name must not be empty")
	}
	if err := Validate(p); err != nil {
		return fmt.Errorf("substance %q: %w", name, err)
	}
	c.mu.Lock()
	c.substances[name] = p
	c.mu.Unlock()
	return nil
}

// Remove unregisters a substance.
func (c *Catalog) Remove(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.substances[name]; !ok {
		return &UnknownSubstanceError{Name: name, Suggestions: c.suggest(name)}
	}
	delete(c.substances, name)
	return nil
}

// List returns the sorted substance names.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.suggestPool()
}

// Validate checks a property set for physical consistency.
func Validate(p Properties) error {
	if p.HHV != nil && *p.HHV <= 0 {
		return fmt.Errorf("HHV must be positive, got %v", *p.HHV)
	}
	if p.LHV != nil && *p.LHV <= 0 {
		return fmt.Errorf("LHV must be positive, got %v", *p.LHV)
	}
	if p.HHV != nil && p.LHV != nil && *p.LHV > *p.HHV {
		return fmt.Errorf("LHV %v exceeds HHV %v", *p.LHV, *p.HHV)
	}
	if p.Density != nil && *p.Density <= 0 {
		return fmt.Errorf("density must be positive, got %v", *p.Density)
	}
	for _, frac := range []struct {
		name  string
		value float64
	}{{"carbon", p.Carbon}, {"hydrogen", p.Hydrogen}, {"ash", p.Ash}} {
		if frac.value < 0 || frac.value > 1 {
			return fmt.Errorf("%s fraction must be within [0, 1], got %v", frac.name, frac.value)
		}
	}
	if p.Carbon+p.Hydrogen+p.Ash > 1+1e-9 {
		return fmt.Errorf("composition fractions sum to %v, exceeding 1", p.Carbon+p.Hydrogen+p.Ash)
	}
	if p.CarbonIntensity < 0 {
		return fmt.Errorf("carbon intensity must not be negative, got %v", p.CarbonIntensity)
	}
	return nil
}

func (c *Catalog) suggest(name string) []string {
	return similar.Closest(name, c.suggestPool(), 3)
}

func (c *Catalog) suggestPool() []string {
	names := make([]string, 0, len(c.substances))
	for n := range c.substances {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
