package substance

func f(v float64) *float64 { return &v }

// Default property table. Heating values MJ/kg, densities kg/m3, carbon
// intensities kg CO2/MWh, composition as mass fractions.
var defaultSubstances = map[string]Properties{
	"coal": {
		Name: "Coal (generic)", HHV: f(29.3), LHV: f(27.8), Density: f(833),
		Carbon: 0.75, Hydrogen: 0.05, Ash: 0.10, CarbonIntensity: 340,
	},
	"lignite": {
		Name: "Lignite Coal", HHV: f(15.0), LHV: f(14.0), Density: f(700),
		Carbon: 0.65, Hydrogen: 0.04, Ash: 0.15, CarbonIntensity: 400,
	},
	"bituminous": {
		Name: "Bituminous Coal", HHV: f(30.0), LHV: f(28.5), Density: f(833),
		Carbon: 0.80, Hydrogen: 0.05, Ash: 0.08, CarbonIntensity: 330,
	},
	"anthracite": {
		Name: "Anthracite Coal", HHV: f(32.5), LHV: f(31.5), Density: f(1000),
		Carbon: 0.85, Hydrogen: 0.04, Ash: 0.05, CarbonIntensity: 320,
	},
	"natural_gas": {
		Name: "Natural Gas", HHV: f(55.0), LHV: f(49.5), Density: f(0.75),
		Carbon: 0.75, Hydrogen: 0.25, CarbonIntensity: 200,
	},
	"lng": {
		Name: "Liquefied Natural Gas", HHV: f(55.0), LHV: f(49.5), Density: f(450),
		Carbon: 0.75, Hydrogen: 0.25, CarbonIntensity: 210,
	},
	"methane": {
		Name: "Methane", HHV: f(55.5), LHV: f(50.0), Density: f(0.68),
		Carbon: 0.75, Hydrogen: 0.25, CarbonIntensity: 200,
	},
	"crude_oil": {
		Name: "Crude Oil", HHV: f(45.0), LHV: f(42.5), Density: f(870),
		Carbon: 0.85, Hydrogen: 0.13, Ash: 0.001, CarbonIntensity: 270,
	},
	"oil": {
		Name: "Oil (generic)", HHV: f(45.0), LHV: f(42.5), Density: f(870),
		Carbon: 0.85, Hydrogen: 0.13, Ash: 0.001, CarbonIntensity: 270,
	},
	"fuel_oil": {
		Name: "Heavy Fuel Oil", HHV: f(43.0), LHV: f(40.5), Density: f(950),
		Carbon: 0.87, Hydrogen: 0.11, Ash: 0.005, CarbonIntensity: 285,
	},
	"diesel": {
		Name: "Diesel", HHV: f(45.7), LHV: f(42.8), Density: f(840),
		Carbon: 0.86, Hydrogen: 0.14, CarbonIntensity: 265,
	},
	"gasoline": {
		Name: "Gasoline", HHV: f(47.3), LHV: f(44.0), Density: f(750),
		Carbon: 0.85, Hydrogen: 0.15, CarbonIntensity: 255,
	},
	"wood_pellets": {
		Name: "Wood Pellets", HHV: f(20.0), LHV: f(18.5), Density: f(650),
		Carbon: 0.50, Hydrogen: 0.06, Ash: 0.01, CarbonIntensity: 20,
	},
	"wood_chips": {
		Name: "Wood Chips", HHV: f(19.0), LHV: f(16.0), Density: f(350),
		Carbon: 0.48, Hydrogen: 0.06, Ash: 0.02, CarbonIntensity: 25,
	},
	"wind":    {Name: "Wind Energy"},
	"solar":   {Name: "Solar Energy"},
	"hydro":   {Name: "Hydro Energy"},
	"nuclear": {Name: "Nuclear Energy"},
	"hydrogen": {
		Name: "Hydrogen", HHV: f(142.0), LHV: f(120.0), Density: f(0.09),
		Hydrogen: 1.0,
	},
	"methanol": {
		Name: "Methanol", HHV: f(22.7), LHV: f(19.9), Density: f(795),
		Carbon: 0.375, Hydrogen: 0.125, CarbonIntensity: 240,
	},
	"CO2": {Name: "Carbon Dioxide", Density: f(1.98), Carbon: 0.273},
	"H2O": {Name: "Water", Density: f(1000), Hydrogen: 0.111},
	"ash": {Name: "Ash", Density: f(1500), Ash: 1.0},
}

// DefaultCatalog builds a catalog loaded with the standard fuel table.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for name, p := range defaultSubstances {
		if err := c.Add(name, p); err != nil {
			panic(err)
		}
	}
	return c
}
