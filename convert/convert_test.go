package convert

import (
	"errors"
	"math"
	"testing"

	"energyunits/registry"
	"energyunits/substance"
)

func newEngine() *Engine {
	return New(substance.DefaultCatalog())
}

func almostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func TestPowerEnergy(t *testing.T) {
	e := newEngine()

	// Default duration is one hour.
	got, err := e.Convert(100, registry.Power, registry.Energy, Params{})
	if err != nil {
		t.Fatalf("power to energy: %v", err)
	}
	if !almostEqual(got, 100) {
		t.Errorf("100 MW over 1 h = %v MWh, want 100", got)
	}

	got, err = e.Convert(100, registry.Power, registry.Energy, Params{Hours: 8760})
	if err != nil {
		t.Fatalf("power to energy over a year: %v", err)
	}
	if !almostEqual(got, 876000) {
		t.Errorf("100 MW over 8760 h = %v MWh, want 876000", got)
	}

	got, err = e.Convert(876000, registry.Energy, registry.Power, Params{Hours: 8760})
	if err != nil {
		t.Fatalf("energy to power: %v", err)
	}
	if !almostEqual(got, 100) {
		t.Errorf("876000 MWh over 8760 h = %v MW, want 100", got)
	}
}

func TestVolumeMass(t *testing.T) {
	e := newEngine()

	// Diesel is 840 kg/m3, so 10 m3 weighs 8.4 t.
	got, err := e.Convert(10, registry.Volume, registry.Mass, Params{Substance: "diesel"})
	if err != nil {
		t.Fatalf("volume to mass: %v", err)
	}
	if !almostEqual(got, 8.4) {
		t.Errorf("10 m3 diesel = %v t, want 8.4", got)
	}

	got, err = e.Convert(8.4, registry.Mass, registry.Volume, Params{Substance: "diesel"})
	if err != nil {
		t.Fatalf("mass to volume: %v", err)
	}
	if !almostEqual(got, 10) {
		t.Errorf("8.4 t diesel = %v m3, want 10", got)
	}
}

func TestMassEnergy(t *testing.T) {
	e := newEngine()

	// Coal LHV 27.8 MJ/kg is 27.8 * 1000/3600 MWh/t; the default basis is LHV.
	epm := 27.8 * 1000.0 / 3600.0
	got, err := e.Convert(1000, registry.Mass, registry.Energy, Params{Substance: "coal"})
	if err != nil {
		t.Fatalf("mass to energy: %v", err)
	}
	if !almostEqual(got, 1000*epm) {
		t.Errorf("1000 t coal = %v MWh, want %v", got, 1000*epm)
	}

	// Explicit HHV basis gives more energy per tonne than the LHV default.
	hhvEnergy, err := e.Convert(1000, registry.Mass, registry.Energy,
		Params{Substance: "coal", Basis: substance.HHV})
	if err != nil {
		t.Fatalf("mass to energy on HHV: %v", err)
	}
	if hhvEnergy <= got {
		t.Errorf("HHV energy %v should be above LHV energy %v", hhvEnergy, got)
	}
	if !almostEqual(hhvEnergy, 1000*29.3*1000.0/3600.0) {
		t.Errorf("HHV energy = %v MWh, want %v", hhvEnergy, 1000*29.3*1000.0/3600.0)
	}

	back, err := e.Convert(got, registry.Energy, registry.Mass, Params{Substance: "coal"})
	if err != nil {
		t.Fatalf("energy to mass: %v", err)
	}
	if !almostEqual(back, 1000) {
		t.Errorf("round trip = %v t, want 1000", back)
	}
}

func TestVolumeEnergyViaMass(t *testing.T) {
	e := newEngine()

	// 1 m3 diesel -> 0.84 t -> 0.84 * 42.8 * 1000/3600 MWh on the LHV default.
	want := 0.84 * 42.8 * 1000.0 / 3600.0
	got, err := e.Convert(1, registry.Volume, registry.Energy, Params{Substance: "diesel"})
	if err != nil {
		t.Fatalf("volume to energy: %v", err)
	}
	if !almostEqual(got, want) {
		t.Errorf("1 m3 diesel = %v MWh, want %v", got, want)
	}

	back, err := e.Convert(got, registry.Energy, registry.Volume, Params{Substance: "diesel"})
	if err != nil {
		t.Fatalf("energy to volume: %v", err)
	}
	if !almostEqual(back, 1) {
		t.Errorf("round trip = %v m3, want 1", back)
	}
}

func TestMissingSubstance(t *testing.T) {
	e := newEngine()

	_, err := e.Convert(1, registry.Mass, registry.Energy, Params{})
	var missing *MissingSubstanceError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSubstanceError, got %v", err)
	}
	if missing.From != registry.Mass || missing.To != registry.Energy {
		t.Errorf("error dims = %s -> %s", missing.From, missing.To)
	}

	// Substances without the needed property surface the catalog error.
	_, err = e.Convert(1, registry.Mass, registry.Energy, Params{Substance: "wind"})
	var noProp *substance.MissingPropertyError
	if !errors.As(err, &noProp) {
		t.Fatalf("expected MissingPropertyError for wind, got %v", err)
	}
}

func TestUnsupportedPair(t *testing.T) {
	e := newEngine()

	if e.Supported(registry.Currency, registry.Energy) {
		t.Error("currency to energy should not be supported")
	}
	_, err := e.Convert(1, registry.Currency, registry.Energy, Params{})
	var unsupported *UnsupportedConversionError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedConversionError, got %v", err)
	}
}
