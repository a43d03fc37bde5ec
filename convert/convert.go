// Package convert implements cross-dimension conversions in base units:
// power to energy over a duration, mass to volume through density, and mass
// or volume to energy through substance heating values.
package convert

import (
	"fmt"

	"energyunits/registry"
	"energyunits/substance"
)

// Params carries the context a cross-dimension conversion may need.
type Params struct {
	// Substance names the material whose properties bridge the dimensions.
	Substance string
	// Basis selects the heating value for energy conversions.
	Basis substance.Basis
	// Hours is the duration linking power and energy. Zero means one hour.
	Hours float64
}

func (p Params) hours() float64 {
	if p.Hours == 0 {
		return 1
	}
	return p.Hours
}

// MissingSubstanceError reports a conversion that needs substance context.
type MissingSubstanceError struct {
	From, To registry.Dimension
}

func (e *MissingSubstanceError) Error() string {
	return fmt.Sprintf("converting %s to %s requires a substance", e.From, e.To)
}

// UnsupportedConversionError reports a dimension pair with no physical
// relationship in the engine.
type UnsupportedConversionError struct {
	From, To registry.Dimension
}

func (e *UnsupportedConversionError) Error() string {
	return fmt.Sprintf("no conversion path from %s to %s", e.From, e.To)
}

type dimPair struct {
	from, to registry.Dimension
}

type convertFunc func(e *Engine, value float64, p Params) (float64, error)

// Engine dispatches cross-dimension conversions over a substance catalog.
// Values are taken and returned in base units (MWh, MW, t, m3, h).
type Engine struct {
	subs  *substance.Catalog
	paths map[dimPair]convertFunc
}

// New builds an engine over the given substance catalog.
func New(subs *substance.Catalog) *Engine {
	e := &Engine{subs: subs}
	e.paths = map[dimPair]convertFunc{
		{registry.Power, registry.Energy}:  (*Engine).powerToEnergy,
		{registry.Energy, registry.Power}:  (*Engine).energyToPower,
		{registry.Volume, registry.Mass}:   (*Engine).volumeToMass,
		{registry.Mass, registry.Volume}:   (*Engine).massToVolume,
		{registry.Mass, registry.Energy}:   (*Engine).massToEnergy,
		{registry.Energy, registry.Mass}:   (*Engine).energyToMass,
		{registry.Volume, registry.Energy}: (*Engine).volumeToEnergy,
		{registry.Energy, registry.Volume}: (*Engine).energyToVolume,
	}
	return e
}

// Supported reports whether a conversion path exists for the dimension pair.
func (e *Engine) Supported(from, to registry.Dimension) bool {
	_, ok := e.paths[dimPair{from, to}]
	return ok
}

// Convert transforms a value in base units of from into base units of to.
func (e *Engine) Convert(value float64, from, to registry.Dimension, p Params) (float64, error) {
	fn, ok := e.paths[dimPair{from, to}]
	if !ok {
		return 0, &UnsupportedConversionError{From: from, To: to}
	}
	return fn(e, value, p)
}

func (e *Engine) powerToEnergy(value float64, p Params) (float64, error) {
	return value * p.hours(), nil
}

func (e *Engine) energyToPower(value float64, p Params) (float64, error) {
	return value / p.hours(), nil
}

// densityTonnePerM3 resolves the substance density in base units.
func (e *Engine) densityTonnePerM3(p Params, from, to registry.Dimension) (float64, error) {
	if p.Substance == "" {
		return 0, &MissingSubstanceError{From: from, To: to}
	}
	kgPerM3, err := e.subs.Density(p.Substance)
	if err != nil {
		return 0, err
	}
	return kgPerM3 / 1000.0, nil
}

func (e *Engine) volumeToMass(value float64, p Params) (float64, error) {
	d, err := e.densityTonnePerM3(p, registry.Volume, registry.Mass)
	if err != nil {
		return 0, err
	}
	return value * d, nil
}

func (e *Engine) massToVolume(value float64, p Params) (float64, error) {
	d, err := e.densityTonnePerM3(p, registry.Mass, registry.Volume)
	if err != nil {
		return 0, err
	}
	return value / d, nil
}

// energyPerMass resolves the heating value in MWh per tonne.
func (e *Engine) energyPerMass(p Params, from, to registry.Dimension) (float64, error) {
	if p.Substance == "" {
		return 0, &MissingSubstanceError{From: from, To: to}
	}
	return e.subs.EnergyPerMass(p.Substance, p.Basis)
}

func (e *Engine) massToEnergy(value float64, p Params) (float64, error) {
	epm, err := e.energyPerMass(p, registry.Mass, registry.Energy)
	if err != nil {
		return 0, err
	}
	return value * epm, nil
}

func (e *Engine) energyToMass(value float64, p Params) (float64, error) {
	epm, err := e.energyPerMass(p, registry.Energy, registry.Mass)
	if err != nil {
		return 0, err
	}
	return value / epm, nil
}

// Volume and energy relate through mass.
func (e *Engine) volumeToEnergy(value float64, p Params) (float64, error) {
	mass, err := e.volumeToMass(value, p)
	if err != nil {
		return 0, err
	}
	return e.massToEnergy(mass, p)
}

func (e *Engine) energyToVolume(value float64, p Params) (float64, error) {
	mass, err := e.energyToMass(value, p)
	if err != nil {
		return 0, err
	}
	return e.massToVolume(mass, p)
}
