package economic

// Annual CPI inflation in percent. Rates through 2023 are historical, later
// years are projections.
var defaultInflation = map[string]map[int]float64{
	"USD": {
		2010: 1.50, 2011: 3.10, 2012: 2.07, 2013: 1.46, 2014: 0.12,
		2015: 0.12, 2016: 1.26, 2017: 2.13, 2018: 2.44, 2019: 1.81,
		2020: 1.23, 2021: 4.70, 2022: 8.00, 2023: 4.12, 2024: 3.15,
		2025: 2.50, 2026: 2.30, 2027: 2.20, 2028: 2.10, 2029: 2.00,
		2030: 2.00,
	},
	"EUR": {
		2010: 1.60, 2011: 2.70, 2012: 2.50, 2013: 1.40, 2014: 0.40,
		2015: 0.00, 2016: 0.20, 2017: 1.50, 2018: 1.80, 2019: 1.20,
		2020: 0.30, 2021: 2.60, 2022: 8.40, 2023: 5.40, 2024: 2.80,
		2025: 2.20, 2026: 2.10, 2027: 2.00, 2028: 2.00, 2029: 2.00,
		2030: 2.00,
	},
}

// Annual average rates, 1 unit = X USD.
var defaultExchange = map[string]map[int]float64{
	"EUR": {
		2010: 1.3257, 2011: 1.3920, 2012: 1.2848, 2013: 1.3281,
		2014: 1.3285, 2015: 1.1095, 2016: 1.1069, 2017: 1.1297,
		2018: 1.1810, 2019: 1.1195, 2020: 1.1422, 2021: 1.1827,
		2022: 1.0530, 2023: 1.0813, 2024: 1.0850, 2025: 1.0800,
	},
	"GBP": {
		2010: 1.5457, 2011: 1.6039, 2012: 1.5853, 2013: 1.5642,
		2014: 1.6476, 2015: 1.5286, 2016: 1.3555, 2017: 1.2886,
		2018: 1.3349, 2019: 1.2768, 2020: 1.2837, 2021: 1.3757,
		2022: 1.2370, 2023: 1.2433, 2024: 1.2700, 2025: 1.2650,
	},
	"JPY": {
		2010: 0.01140, 2011: 0.01254, 2012: 0.01253, 2013: 0.01025,
		2014: 0.00947, 2015: 0.00826, 2016: 0.00921, 2017: 0.00892,
		2018: 0.00906, 2019: 0.00917, 2020: 0.00937, 2021: 0.00911,
		2022: 0.00762, 2023: 0.00712, 2024: 0.00660, 2025: 0.00670,
	},
	"CNY": {
		2010: 0.1477, 2011: 0.1549, 2012: 0.1585, 2013: 0.1624,
		2014: 0.1627, 2015: 0.1591, 2016: 0.1506, 2017: 0.1481,
		2018: 0.1512, 2019: 0.1448, 2020: 0.1450, 2021: 0.1550,
		2022: 0.1486, 2023: 0.1412, 2024: 0.1390, 2025: 0.1400,
	},
}

// DefaultInflation builds a table with the standard USD and EUR series.
func DefaultInflation() *Inflation {
	in := NewInflation()
	for currency, rates := range defaultInflation {
		in.Set(currency, rates)
	}
	return in
}

// DefaultExchange builds a table with the standard EUR, GBP, JPY and CNY
// annual series.
func DefaultExchange() *Exchange {
	ex := NewExchange()
	for currency, rates := range defaultExchange {
		ex.Set(currency, rates)
	}
	return ex
}
