package registry

// Base units: MWh, MW, t, m3, h, USD. Every factor below converts one unit
// of the symbol into its dimension's base unit.
var defaultUnits = map[Dimension]map[string]float64{
	Energy: {
		"J":     1e-9 / 3.6,
		"kJ":    1e-6 / 3.6,
		"MJ":    1e-3 / 3.6,
		"GJ":    1 / 3.6,
		"TJ":    1e3 / 3.6,
		"PJ":    1e6 / 3.6,
		"EJ":    1e9 / 3.6,
		"Wh":    1e-6,
		"kWh":   1e-3,
		"MWh":   1,
		"GWh":   1e3,
		"TWh":   1e6,
		"PWh":   1e9,
		"MMBTU": 0.293071,
	},
	Power: {
		"W":  1e-6,
		"kW": 1e-3,
		"MW": 1,
		"GW": 1e3,
		"TW": 1e6,
	},
	Mass: {
		"g":  1e-6,
		"kg": 1e-3,
		"t":  1,
		"Mt": 1e6,
		"Gt": 1e9,
	},
	Volume: {
		"m3":     1,
		"L":      1e-3,
		"barrel": 0.159,
	},
	Time: {
		"s":   1.0 / 3600,
		"min": 1.0 / 60,
		"h":   1,
		"a":   8760,
	},
	Currency: {
		"USD": 1,
		"EUR": 1.08,
		"GBP": 1.27,
		"JPY": 0.0067,
		"CNY": 0.14,
	},
}

var defaultBaseUnits = map[Dimension]string{
	Energy:   "MWh",
	Power:    "MW",
	Mass:     "t",
	Volume:   "m3",
	Time:     "h",
	Currency: "USD",
}

var defaultCorresponding = [][2]string{
	{"W", "Wh"},
	{"kW", "kWh"},
	{"MW", "MWh"},
	{"GW", "GWh"},
	{"TW", "TWh"},
}

// Fallback target units for cross-dimension conversions that have no
// per-unit counterpart.
var defaultStandardUnits = map[dimPair]string{
	{Energy, Power}:  "MW",
	{Power, Energy}:  "MWh",
	{Energy, Mass}:   "t",
	{Mass, Energy}:   "MWh",
	{Energy, Volume}: "m3",
	{Volume, Energy}: "MWh",
	{Mass, Volume}:   "m3",
	{Volume, Mass}:   "t",
	{Energy, Time}:   "h",
}

// DefaultCatalog builds a catalog loaded with the standard energy-system
// units and dimensional-algebra rules.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for dim, units := range defaultUnits {
		base := defaultBaseUnits[dim]
		// Register the base unit first so it anchors the dimension.
		if err := c.AddUnit(base, dim, 1); err != nil {
			panic(err)
		}
		for u, f := range units {
			if u == base {
				continue
			}
			if err := c.AddUnit(u, dim, f); err != nil {
				panic(err)
			}
		}
	}
	for _, pair := range defaultCorresponding {
		c.AddCorrespondingUnit(pair[0], pair[1])
	}
	for p, u := range defaultStandardUnits {
		c.SetStandardUnit(p.from, p.to, u)
	}
	c.AddMultiplicationRule(MulRule{A: Power, B: Time, Result: Energy, Source: Power})
	c.AddDivisionRule(DivRule{Num: Energy, Den: Time, Result: Power})
	c.AddDivisionRule(DivRule{Num: Energy, Den: Power, Result: Time})
	return c
}
