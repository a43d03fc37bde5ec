// Package economic provides inflation adjustment and year-dependent currency
// exchange for cost figures.
package economic

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// UnsupportedCurrencyError reports a currency with no table data.
type UnsupportedCurrencyError struct {
	Currency  string
	Supported []string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("currency %q not supported, available: %s",
		e.Currency, strings.Join(e.Supported, ", "))
}

// YearOutOfRangeError reports a year outside a currency's table coverage.
type YearOutOfRangeError struct {
	Currency string
	Year     int
	Min, Max int
}

func (e *YearOutOfRangeError) Error() string {
	return fmt.Sprintf("no data for %s in year %d, available years: %d-%d",
		e.Currency, e.Year, e.Min, e.Max)
}

// MissingReferenceYearError reports a year-dependent adjustment requested on
// a quantity that carries no reference year.
type MissingReferenceYearError struct {
	Unit string
}

func (e *MissingReferenceYearError) Error() string {
	return fmt.Sprintf("cannot adjust %q value without a reference year", e.Unit)
}

// Inflation holds annual CPI rates per currency, in percent.
type Inflation struct {
	mu    sync.RWMutex
	rates map[string]map[int]float64
}

// NewInflation returns an empty table. Most callers want DefaultInflation.
func NewInflation() *Inflation {
	return &Inflation{rates: make(map[string]map[int]float64)}
}

// Set merges annual rates for a currency into the table.
func (in *Inflation) Set(currency string, rates map[int]float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	dst := in.rates[currency]
	if dst == nil {
		dst = make(map[int]float64, len(rates))
		in.rates[currency] = dst
	}
	for year, rate := range rates {
		dst[year] = rate
	}
}

// Factor returns the cumulative inflation factor from fromYear to toYear.
// Going forward multiplies the annual factors over the years after fromYear
// up to and including toYear; going backward divides them, so the two
// directions are exact inverses.
func (in *Inflation) Factor(currency string, fromYear, toYear int) (float64, error) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	data, ok := in.rates[currency]
	if !ok {
		return 0, &UnsupportedCurrencyError{Currency: currency, Supported: in.currencies()}
	}
	if fromYear == toYear {
		return 1.0, nil
	}
	lo, hi, invert := fromYear, toYear, false
	if fromYear > toYear {
		lo, hi, invert = toYear, fromYear, true
	}
	factor := 1.0
	for year := lo + 1; year <= hi; year++ {
		rate, ok := data[year]
		if !ok {
			min, max := yearRange(data)
			return 0, &YearOutOfRangeError{Currency: currency, Year: year, Min: min, Max: max}
		}
		factor *= 1.0 + rate/100.0
	}
	if invert {
		factor = 1.0 / factor
	}
	return factor, nil
}

// YearRange returns the first and last year with data for a currency.
func (in *Inflation) YearRange(currency string) (min, max int, err error) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	data, ok := in.rates[currency]
	if !ok {
		return 0, 0, &UnsupportedCurrencyError{Currency: currency, Supported: in.currencies()}
	}
	min, max = yearRange(data)
	return min, max, nil
}

// Currencies returns the sorted currency codes with inflation data.
func (in *Inflation) Currencies() []string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.currencies()
}

func (in *Inflation) currencies() []string {
	out := make([]string, 0, len(in.rates))
	for c := range in.rates {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func yearRange(data map[int]float64) (min, max int) {
	first := true
	for year := range data {
		if first || year < min {
			min = year
		}
		if first || year > max {
			max = year
		}
		first = false
	}
	return min, max
}
