package economic

import (
	"sort"
	"strings"
	"sync"
)

// LatestYear selects the most recent year with data in exchange lookups.
const LatestYear = 0

// Exchange holds annual average exchange rates per currency, expressed as
// 1 unit of the currency = rate USD. USD itself is always 1.
type Exchange struct {
	mu    sync.RWMutex
	rates map[string]map[int]float64
}

// NewExchange returns an empty table. Most callers want DefaultExchange.
func NewExchange() *Exchange {
	return &Exchange{rates: make(map[string]map[int]float64)}
}

// Set merges annual USD rates for a currency into the table.
func (ex *Exchange) Set(currency string, rates map[int]float64) {
	if currency == "USD" {
		return
	}
	ex.mu.Lock()
	defer ex.mu.Unlock()
	dst := ex.rates[currency]
	if dst == nil {
		dst = make(map[int]float64, len(rates))
		ex.rates[currency] = dst
	}
	for year, rate := range rates {
		dst[year] = rate
	}
}

// Rate returns the USD value of one unit of currency in the given year.
// LatestYear picks the most recent year with data. A year with no data is a
// hard error rather than a silent fallback.
func (ex *Exchange) Rate(currency string, year int) (float64, error) {
	if currency == "USD" {
		return 1.0, nil
	}
	ex.mu.RLock()
	defer ex.mu.RUnlock()
	data, ok := ex.rates[currency]
	if !ok {
		return 0, &UnsupportedCurrencyError{Currency: currency, Supported: ex.currencies()}
	}
	if year == LatestYear {
		_, year = yearRange(data)
	}
	rate, ok := data[year]
	if !ok {
		min, max := yearRange(data)
		return 0, &YearOutOfRangeError{Currency: currency, Year: year, Min: min, Max: max}
	}
	return rate, nil
}

// Factor returns f such that an amount in from equals amount × f in to,
// using the given year's rates with USD as the bridge.
func (ex *Exchange) Factor(from, to string, year int) (float64, error) {
	if from == to {
		return 1.0, nil
	}
	fromRate, err := ex.Rate(from, year)
	if err != nil {
		return 0, err
	}
	toRate, err := ex.Rate(to, year)
	if err != nil {
		return 0, err
	}
	return fromRate / toRate, nil
}

// Currencies returns the sorted supported currency codes, USD included.
func (ex *Exchange) Currencies() []string {
	ex.mu.RLock()
	defer ex.mu.RUnlock()
	return ex.currencies()
}

func (ex *Exchange) currencies() []string {
	out := make([]string, 0, len(ex.rates)+1)
	out = append(out, "USD")
	for c := range ex.rates {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// IsCurrency reports whether unit is a bare supported currency code.
func (ex *Exchange) IsCurrency(unit string) bool {
	if unit == "USD" {
		return true
	}
	ex.mu.RLock()
	defer ex.mu.RUnlock()
	_, ok := ex.rates[unit]
	return ok
}

// DetectCurrency finds the currency component of a simple or compound unit.
// Components must match a supported code exactly; "$" and "dollar" spellings
// map to USD.
func (ex *Exchange) DetectCurrency(unit string) (string, bool) {
	for _, part := range strings.Split(unit, "/") {
		if ex.IsCurrency(part) {
			return part, true
		}
	}
	if strings.Contains(unit, "$") || strings.Contains(strings.ToUpper(unit), "DOLLAR") {
		return "USD", true
	}
	return "", false
}
