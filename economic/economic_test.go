package economic

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func TestInflationFactorForward(t *testing.T) {
	in := DefaultInflation()

	got, err := in.Factor("USD", 2020, 2022)
	if err != nil {
		t.Fatalf("USD 2020->2022: %v", err)
	}
	want := 1.047 * 1.08
	if !almostEqual(got, want) {
		t.Errorf("USD 2020->2022 factor = %v, want %v", got, want)
	}

	got, err = in.Factor("USD", 2023, 2023)
	if err != nil {
		t.Fatalf("USD 2023->2023: %v", err)
	}
	if got != 1.0 {
		t.Errorf("same-year factor = %v, want 1", got)
	}
}

func TestInflationFactorBackwardIsInverse(t *testing.T) {
	in := DefaultInflation()

	fwd, err := in.Factor("EUR", 2015, 2023)
	if err != nil {
		t.Fatalf("EUR 2015->2023: %v", err)
	}
	bwd, err := in.Factor("EUR", 2023, 2015)
	if err != nil {
		t.Fatalf("EUR 2023->2015: %v", err)
	}
	if !almostEqual(fwd*bwd, 1.0) {
		t.Errorf("forward x backward = %v, want 1", fwd*bwd)
	}
	if fwd <= 1.0 {
		t.Errorf("EUR 2015->2023 factor = %v, want > 1", fwd)
	}
}

func TestInflationErrors(t *testing.T) {
	in := DefaultInflation()

	_, err := in.Factor("CHF", 2020, 2022)
	var unsupported *UnsupportedCurrencyError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedCurrencyError, got %v", err)
	}

	_, err = in.Factor("USD", 2000, 2020)
	var outOfRange *YearOutOfRangeError
	if !errors.As(err, &outOfRange) {
		t.Fatalf("expected YearOutOfRangeError, got %v", err)
	}
	if outOfRange.Min != 2010 || outOfRange.Max != 2030 {
		t.Errorf("range = %d-%d, want 2010-2030", outOfRange.Min, outOfRange.Max)
	}
}

func TestInflationYearRangeAndCurrencies(t *testing.T) {
	in := DefaultInflation()
	min, max, err := in.YearRange("USD")
	if err != nil {
		t.Fatalf("YearRange(USD): %v", err)
	}
	if min != 2010 || max != 2030 {
		t.Errorf("USD range = %d-%d, want 2010-2030", min, max)
	}
	currencies := in.Currencies()
	if len(currencies) != 2 || currencies[0] != "EUR" || currencies[1] != "USD" {
		t.Errorf("Currencies() = %v, want [EUR USD]", currencies)
	}
}

func TestInflationCustomData(t *testing.T) {
	in := DefaultInflation()
	in.Set("CHF", map[int]float64{2021: 0.6, 2022: 2.8, 2023: 2.1})
	got, err := in.Factor("CHF", 2021, 2023)
	if err != nil {
		t.Fatalf("CHF 2021->2023: %v", err)
	}
	want := 1.028 * 1.021
	if !almostEqual(got, want) {
		t.Errorf("CHF 2021->2023 factor = %v, want %v", got, want)
	}
}

func TestExchangeRate(t *testing.T) {
	ex := DefaultExchange()

	got, err := ex.Rate("EUR", 2010)
	if err != nil {
		t.Fatalf("EUR 2010: %v", err)
	}
	if got != 1.3257 {
		t.Errorf("EUR 2010 = %v, want 1.3257", got)
	}

	got, err = ex.Rate("USD", 1850)
	if err != nil {
		t.Fatalf("USD any year: %v", err)
	}
	if got != 1.0 {
		t.Errorf("USD rate = %v, want 1", got)
	}

	latest, err := ex.Rate("EUR", LatestYear)
	if err != nil {
		t.Fatalf("EUR latest: %v", err)
	}
	if latest != 1.08 {
		t.Errorf("EUR latest = %v, want 1.08 (2025)", latest)
	}

	jpy2020, _ := ex.Rate("JPY", 2020)
	jpy2024, _ := ex.Rate("JPY", 2024)
	if jpy2020 <= jpy2024 {
		t.Errorf("JPY 2020 (%v) should exceed JPY 2024 (%v)", jpy2020, jpy2024)
	}
}

func TestExchangeRateErrors(t *testing.T) {
	ex := DefaultExchange()

	_, err := ex.Rate("CHF", 2020)
	var unsupported *UnsupportedCurrencyError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedCurrencyError, got %v", err)
	}

	_, err = ex.Rate("EUR", 1999)
	var outOfRange *YearOutOfRangeError
	if !errors.As(err, &outOfRange) {
		t.Fatalf("expected YearOutOfRangeError, got %v", err)
	}
	if outOfRange.Currency != "EUR" || outOfRange.Year != 1999 {
		t.Errorf("error = %+v", outOfRange)
	}
}

func TestExchangeFactor(t *testing.T) {
	ex := DefaultExchange()

	got, err := ex.Factor("EUR", "USD", 2010)
	if err != nil {
		t.Fatalf("EUR->USD 2010: %v", err)
	}
	if !almostEqual(got, 1.3257) {
		t.Errorf("EUR->USD 2010 = %v, want 1.3257", got)
	}

	got, err = ex.Factor("USD", "EUR", 2020)
	if err != nil {
		t.Fatalf("USD->EUR 2020: %v", err)
	}
	if !almostEqual(got, 1/1.1422) {
		t.Errorf("USD->EUR 2020 = %v, want %v", got, 1/1.1422)
	}

	// Cross rate bridges through USD.
	got, err = ex.Factor("EUR", "GBP", 2020)
	if err != nil {
		t.Fatalf("EUR->GBP 2020: %v", err)
	}
	if !almostEqual(got, 1.1422/1.2837) {
		t.Errorf("EUR->GBP 2020 = %v, want %v", got, 1.1422/1.2837)
	}

	got, err = ex.Factor("GBP", "GBP", 1800)
	if err != nil {
		t.Fatalf("same currency: %v", err)
	}
	if got != 1.0 {
		t.Errorf("same-currency factor = %v, want 1", got)
	}
}

func TestDetectCurrency(t *testing.T) {
	ex := DefaultExchange()

	cases := []struct {
		unit string
		want string
		ok   bool
	}{
		{"USD", "USD", true},
		{"EUR/MWh", "EUR", true},
		{"USD/kW/a", "USD", true},
		{"$/t", "USD", true},
		{"dollar/MWh", "USD", true},
		{"MWh", "", false},
		{"t/MWh", "", false},
	}
	for _, tc := range cases {
		got, ok := ex.DetectCurrency(tc.unit)
		if got != tc.want || ok != tc.ok {
			t.Errorf("DetectCurrency(%q) = (%q, %v), want (%q, %v)", tc.unit, got, ok, tc.want, tc.ok)
		}
	}

	if !ex.IsCurrency("JPY") || ex.IsCurrency("JPY/MWh") {
		t.Error("IsCurrency should accept bare codes only")
	}
}
