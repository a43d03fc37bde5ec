package quantity

import (
	"testing"

	"energyunits/registry"
	"energyunits/substance"
)

func TestAddWithConversion(t *testing.T) {
	s := quietSystem()

	a := mustNew(t, s, 1, "GWh")
	b := mustNew(t, s, 500, "MWh")
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("GWh + MWh: %v", err)
	}
	checkScalar(t, sum, 1.5, "GWh")

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("GWh - MWh: %v", err)
	}
	checkScalar(t, diff, 0.5, "GWh")

	c := mustNew(t, s, 1, "t")
	if _, err := a.Add(c); err == nil {
		t.Error("expected error adding energy and mass")
	}
}

func TestAddDifferentSubstancesAdvises(t *testing.T) {
	s := Default()
	var advisories int
	s.Advisory = func(format string, args ...interface{}) { advisories++ }

	coal := mustNew(t, s, 100, "MWh", WithSubstance("coal"))
	gas := mustNew(t, s, 50, "MWh", WithSubstance("natural_gas"))
	sum, err := coal.Add(gas)
	if err != nil {
		t.Fatalf("coal + gas: %v", err)
	}
	if advisories != 1 {
		t.Errorf("got %d advisories, want 1", advisories)
	}
	if sum.Substance() != "" {
		t.Errorf("substance = %q, want cleared", sum.Substance())
	}
	checkScalar(t, sum, 150, "MWh")

	// Same substance adds silently and keeps it.
	advisories = 0
	moreCoal := mustNew(t, s, 25, "MWh", WithSubstance("coal"))
	sum, err = coal.Add(moreCoal)
	if err != nil {
		t.Fatalf("coal + coal: %v", err)
	}
	if advisories != 0 {
		t.Errorf("got %d advisories, want 0", advisories)
	}
	if sum.Substance() != "coal" {
		t.Errorf("substance = %q, want coal", sum.Substance())
	}

	// A plain operand clears the substance without an advisory.
	advisories = 0
	plain := mustNew(t, s, 10, "MWh")
	sum, err = coal.Add(plain)
	if err != nil {
		t.Fatalf("coal + plain: %v", err)
	}
	if advisories != 0 {
		t.Errorf("got %d advisories, want 0 when one side has no substance", advisories)
	}
	if sum.Substance() != "" {
		t.Errorf("substance = %q, want cleared", sum.Substance())
	}
	checkScalar(t, sum, 110, "MWh")
}

func TestAddSeriesBroadcast(t *testing.T) {
	s := quietSystem()

	series, err := s.NewSeries([]float64{1, 2, 3}, "MWh")
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	scalar := mustNew(t, s, 10, "MWh")
	sum, err := series.Add(scalar)
	if err != nil {
		t.Fatalf("series + scalar: %v", err)
	}
	want := []float64{11, 12, 13}
	for i, v := range sum.Values() {
		if !almostEqual(v, want[i]) {
			t.Errorf("values[%d] = %v, want %v", i, v, want[i])
		}
	}
	if sum.IsScalar() {
		t.Error("series sum should stay a series")
	}

	short, _ := s.NewSeries([]float64{1, 2}, "MWh")
	if _, err := series.Add(short); err == nil {
		t.Error("expected error for length mismatch")
	}
}

func TestSmartCancellation(t *testing.T) {
	s := quietSystem()

	price := mustNew(t, s, 500, "USD/kW")
	capacity := mustNew(t, s, 100, "MW")

	cost, err := price.Mul(capacity)
	if err != nil {
		t.Fatalf("USD/kW x MW: %v", err)
	}
	checkScalar(t, cost, 5e7, "USD")

	// Order does not matter.
	cost, err = capacity.Mul(price)
	if err != nil {
		t.Fatalf("MW x USD/kW: %v", err)
	}
	checkScalar(t, cost, 5e7, "USD")
}

func TestCancellationAdoptsSubstance(t *testing.T) {
	s := quietSystem()

	price := mustNew(t, s, 2, "USD/kg")
	coal := mustNew(t, s, 3, "t", WithSubstance("coal"))
	cost, err := price.Mul(coal)
	if err != nil {
		t.Fatalf("USD/kg x t: %v", err)
	}
	checkScalar(t, cost, 6000, "USD")
	if cost.Substance() != "coal" {
		t.Errorf("substance = %q, want coal carried from the single tagged operand", cost.Substance())
	}
}

func TestSmartCancellationSeries(t *testing.T) {
	s := quietSystem()

	prices, err := s.NewSeries([]float64{10, 20}, "USD/MWh")
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	energies, err := s.NewSeries([]float64{2, 3}, "GWh")
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	cost, err := prices.Mul(energies)
	if err != nil {
		t.Fatalf("USD/MWh x GWh: %v", err)
	}
	if cost.Unit() != "USD" {
		t.Fatalf("unit = %q, want USD", cost.Unit())
	}
	want := []float64{20000, 60000}
	for i, v := range cost.Values() {
		if !almostEqual(v, want[i]) {
			t.Errorf("values[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestMulDimensionRule(t *testing.T) {
	s := quietSystem()

	power := mustNew(t, s, 100, "MW")
	duration := mustNew(t, s, 30, "min")
	energy, err := power.Mul(duration)
	if err != nil {
		t.Fatalf("MW x min: %v", err)
	}
	checkScalar(t, energy, 50, "MWh")

	hours := mustNew(t, s, 2, "h")
	energy, err = hours.Mul(power)
	if err != nil {
		t.Fatalf("h x MW: %v", err)
	}
	checkScalar(t, energy, 200, "MWh")

	kw := mustNew(t, s, 10, "kW")
	energy, err = kw.Mul(hours)
	if err != nil {
		t.Fatalf("kW x h: %v", err)
	}
	checkScalar(t, energy, 20, "kWh")
}

func TestMulLiteralFallback(t *testing.T) {
	s := quietSystem()

	mass := mustNew(t, s, 2, "t")
	energy := mustNew(t, s, 3, "MWh")
	got, err := mass.Mul(energy)
	if err != nil {
		t.Fatalf("t x MWh: %v", err)
	}
	value, _ := got.Value()
	if !almostEqual(value, 6) {
		t.Errorf("value = %v, want 6", value)
	}
	if got.Unit() != "t·MWh" {
		t.Errorf("unit = %q, want t·MWh", got.Unit())
	}
}

func TestDivSameDimension(t *testing.T) {
	s := quietSystem()

	a := mustNew(t, s, 3, "GWh")
	b := mustNew(t, s, 1500, "MWh")
	ratio, err := a.Div(b)
	if err != nil {
		t.Fatalf("GWh / MWh: %v", err)
	}
	checkScalar(t, ratio, 2, "")
	if ratio.Dimension() != registry.Dimensionless {
		t.Errorf("dimension = %s, want DIMENSIONLESS", ratio.Dimension())
	}
}

func TestDivDimensionRules(t *testing.T) {
	s := quietSystem()

	energy := mustNew(t, s, 100, "MWh")
	duration := mustNew(t, s, 4, "h")
	power, err := energy.Div(duration)
	if err != nil {
		t.Fatalf("MWh / h: %v", err)
	}
	checkScalar(t, power, 25, "MW")

	big := mustNew(t, s, 48, "GWh")
	day := mustNew(t, s, 24, "h")
	gw, err := big.Div(day)
	if err != nil {
		t.Fatalf("GWh / h: %v", err)
	}
	checkScalar(t, gw, 2, "GW")

	capacity := mustNew(t, s, 25, "MW")
	hours, err := energy.Div(capacity)
	if err != nil {
		t.Fatalf("MWh / MW: %v", err)
	}
	checkScalar(t, hours, 4, "h")
}

func TestDivLiteralCompound(t *testing.T) {
	s := quietSystem()

	cost := mustNew(t, s, 5000, "USD")
	energy := mustNew(t, s, 100, "MWh")
	price, err := cost.Div(energy)
	if err != nil {
		t.Fatalf("USD / MWh: %v", err)
	}
	checkScalar(t, price, 50, "USD/MWh")
	if price.Dimension() != registry.Per(registry.Currency, registry.Energy) {
		t.Errorf("dimension = %s", price.Dimension())
	}
}

func TestScalarArithmetic(t *testing.T) {
	s := quietSystem()

	q := mustNew(t, s, 100, "MWh", WithSubstance("coal"))
	doubled := q.MulScalar(2)
	checkScalar(t, doubled, 200, "MWh")
	if doubled.Substance() != "coal" {
		t.Error("scalar multiply should keep metadata")
	}

	halved, err := q.DivScalar(2)
	if err != nil {
		t.Fatalf("DivScalar: %v", err)
	}
	checkScalar(t, halved, 50, "MWh")

	if _, err := q.DivScalar(0); err == nil {
		t.Error("expected error dividing by zero")
	}
}

func TestComparisons(t *testing.T) {
	s := quietSystem()

	a := mustNew(t, s, 1, "GWh")
	b := mustNew(t, s, 500, "MWh")

	less, err := b.Less(a)
	if err != nil {
		t.Fatalf("Less: %v", err)
	}
	if !less {
		t.Error("500 MWh should be less than 1 GWh")
	}

	greater, err := a.Greater(b)
	if err != nil {
		t.Fatalf("Greater: %v", err)
	}
	if !greater {
		t.Error("1 GWh should be greater than 500 MWh")
	}

	same := mustNew(t, s, 1000, "MWh")
	if !a.Equal(same) {
		t.Error("1 GWh should equal 1000 MWh")
	}
	if a.NotEqual(same) {
		t.Error("1 GWh should not be unequal to 1000 MWh")
	}

	ge, err := a.GreaterEqual(same)
	if err != nil {
		t.Fatalf("GreaterEqual: %v", err)
	}
	if !ge {
		t.Error("1 GWh should be >= 1000 MWh")
	}

	mass := mustNew(t, s, 1, "t")
	if a.Equal(mass) {
		t.Error("energy should not equal mass")
	}
	if _, err := a.Less(mass); err == nil {
		t.Error("expected error ordering energy against mass")
	}
}

func TestComparisonSeries(t *testing.T) {
	s := quietSystem()

	a, _ := s.NewSeries([]float64{1, 2, 3}, "MWh")
	b, _ := s.NewSeries([]float64{2, 3, 4}, "MWh")
	mixed, _ := s.NewSeries([]float64{2, 1, 4}, "MWh")

	less, err := a.Less(b)
	if err != nil {
		t.Fatalf("Less: %v", err)
	}
	if !less {
		t.Error("all values of a are below b")
	}

	less, err = a.Less(mixed)
	if err != nil {
		t.Fatalf("Less: %v", err)
	}
	if less {
		t.Error("not all values of a are below mixed")
	}

	if !a.NotEqual(mixed) {
		t.Error("a differs from mixed in at least one value")
	}
}

func TestBasisMetadataInArithmetic(t *testing.T) {
	s := quietSystem()

	a := mustNew(t, s, 1, "MWh", WithSubstance("coal"), WithBasis(substance.LHV))
	b := mustNew(t, s, 2, "MWh", WithSubstance("coal"), WithBasis(substance.LHV))
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Basis() != substance.LHV {
		t.Errorf("basis = %v, want LHV", sum.Basis())
	}

	c := mustNew(t, s, 2, "MWh", WithSubstance("coal"), WithBasis(substance.HHV))
	sum, err = a.Add(c)
	if err != nil {
		t.Fatalf("Add mixed basis: %v", err)
	}
	if sum.Basis() != substance.BasisUnspecified {
		t.Errorf("basis = %v, want unspecified for mixed bases", sum.Basis())
	}
}
