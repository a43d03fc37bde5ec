package registry

import "strings"

// Dimension identifies the physical category of a unit. Compound dimensions
// are derived with Per and never stored in the catalog tables, with one
// normalization: ENERGY per TIME is POWER.
type Dimension string

const (
	Energy        Dimension = "ENERGY"
	Power         Dimension = "POWER"
	Mass          Dimension = "MASS"
	Volume        Dimension = "VOLUME"
	Time          Dimension = "TIME"
	Currency      Dimension = "CURRENCY"
	Dimensionless Dimension = "DIMENSIONLESS"
)

// Per derives the compound dimension for a numerator/denominator pair.
func Per(num, den Dimension) Dimension {
	if num == Energy && den == Time {
		return Power
	}
	return Dimension(string(num) + "_PER_" + string(den))
}

// Times derives the compound dimension for a product with no registered
// algebra rule.
func Times(a, b Dimension) Dimension {
	return Dimension(string(a) + "_TIMES_" + string(b))
}

// IsCompound reports whether d is a derived ratio dimension.
func (d Dimension) IsCompound() bool {
	return strings.Contains(string(d), "_PER_")
}
