package quantity

import (
	"fmt"
	"strconv"
	"strings"

	"energyunits/convert"
	"energyunits/economic"
	"energyunits/registry"
	"energyunits/substance"
)

// Quantity is an immutable value, scalar or series, tagged with a unit and
// optional substance, heating value basis and reference year. All operations
// return new quantities.
type Quantity struct {
	values  []float64
	scalar  bool
	unit    string
	dim     registry.Dimension
	subst   string
	basis   substance.Basis
	refYear int
	sys     *System
}

// New builds a scalar quantity.
func (s *System) New(value float64, unit string, opts ...Option) (*Quantity, error) {
	q, err := s.NewSeries([]float64{value}, unit, opts...)
	if err != nil {
		return nil, err
	}
	q.scalar = true
	return q, nil
}

// NewSeries builds a quantity over a series of values sharing one unit and
// metadata.
func (s *System) NewSeries(values []float64, unit string, opts ...Option) (*Quantity, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("quantity needs at least one value")
	}
	dim, err := s.Units.Dimension(unit)
	if err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	q := &Quantity{
		values: append([]float64(nil), values...),
		unit:   unit,
		dim:    dim,
		sys:    s,
	}
	if o.substance != nil && *o.substance != "" {
		if _, err := s.Substances.Get(*o.substance); err != nil {
			return nil, err
		}
		q.subst = *o.substance
	}
	if o.basis != nil {
		q.basis = *o.basis
	}
	if o.refYear != nil {
		q.refYear = *o.refYear
	}
	return q, nil
}

// Value returns the scalar value. Series quantities return an error.
func (q *Quantity) Value() (float64, error) {
	if !q.scalar {
		return 0, fmt.Errorf("quantity holds %d values, not a scalar", len(q.values))
	}
	return q.values[0], nil
}

// Values returns a copy of the underlying values.
func (q *Quantity) Values() []float64 {
	return append([]float64(nil), q.values...)
}

// IsScalar reports whether the quantity holds a single value.
func (q *Quantity) IsScalar() bool { return q.scalar }

// Len returns the number of values.
func (q *Quantity) Len() int { return len(q.values) }

// Unit returns the unit string.
func (q *Quantity) Unit() string { return q.unit }

// Dimension returns the resolved dimension.
func (q *Quantity) Dimension() registry.Dimension { return q.dim }

// Substance returns the substance name, empty when unset.
func (q *Quantity) Substance() string { return q.subst }

// Basis returns the heating value basis.
func (q *Quantity) Basis() substance.Basis { return q.basis }

// ReferenceYear returns the price year and whether one is set.
func (q *Quantity) ReferenceYear() (int, bool) { return q.refYear, q.refYear != 0 }

// System returns the catalogs this quantity converts against.
func (q *Quantity) System() *System { return q.sys }

func (q *Quantity) String() string {
	var b strings.Builder
	if q.scalar {
		b.WriteString(strconv.FormatFloat(q.values[0], 'g', -1, 64))
	} else {
		b.WriteString(fmt.Sprintf("%d values", len(q.values)))
	}
	if q.unit != "" {
		b.WriteByte(' ')
		b.WriteString(q.unit)
	}
	var tags []string
	if q.subst != "" {
		tags = append(tags, q.subst)
	}
	if q.basis != substance.BasisUnspecified {
		tags = append(tags, q.basis.String())
	}
	if q.refYear != 0 {
		tags = append(tags, strconv.Itoa(q.refYear))
	}
	if len(tags) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(tags, ", "))
		b.WriteByte(')')
	}
	return b.String()
}

func (q *Quantity) clone() *Quantity {
	out := *q
	out.values = append([]float64(nil), q.values...)
	return &out
}

func (q *Quantity) scale(factor float64) {
	for i := range q.values {
		q.values[i] *= factor
	}
}

// To converts the quantity to a target unit, substance, basis or reference
// year, in that order. An empty target keeps the current unit, which allows
// pure metadata conversions such as a basis change or an inflation
// adjustment.
func (q *Quantity) To(target string, opts ...Option) (*Quantity, error) {
	o := applyOptions(opts)
	out := q.clone()

	if o.substance != nil && *o.substance != out.subst {
		if err := out.toProduct(*o.substance, o); err != nil {
			return nil, err
		}
	}
	if o.basis != nil && *o.basis != substance.BasisUnspecified {
		if err := out.toBasis(*o.basis); err != nil {
			return nil, err
		}
	}
	if err := out.toUnit(target, o); err != nil {
		return nil, err
	}
	return out, nil
}

// toProduct rewrites the quantity as the mass of a combustion product of its
// current substance.
func (out *Quantity) toProduct(product string, o options) error {
	s := out.sys
	if out.subst == "" {
		return fmt.Errorf("cannot derive %s without a substance, construct the quantity with WithSubstance", product)
	}
	fuel := out.subst
	yield, err := s.Substances.CombustionYield(fuel, product)
	if err != nil {
		return err
	}
	nonCombustible, err := s.Substances.NonCombustible(fuel)
	if err != nil {
		return err
	}
	if nonCombustible {
		for i := range out.values {
			out.values[i] = 0
		}
	} else {
		// Fuel mass in tonnes.
		if out.dim == registry.Mass {
			f, err := s.Units.ConversionFactor(out.unit, "t")
			if err != nil {
				return err
			}
			out.scale(f * yield)
		} else {
			base, ok := s.Units.BaseUnit(out.dim)
			if !ok || !s.engine.Supported(out.dim, registry.Mass) {
				return &registry.IncompatibleUnitsError{
					From: out.unit, To: "t", FromDim: out.dim, ToDim: registry.Mass,
				}
			}
			toBase, err := s.Units.ConversionFactor(out.unit, base)
			if err != nil {
				return err
			}
			massFactor, err := s.engine.Convert(1, out.dim, registry.Mass, convert.Params{
				Substance: fuel,
				Basis:     out.basis,
				Hours:     o.hoursOrZero(),
			})
			if err != nil {
				return err
			}
			out.scale(toBase * massFactor * yield)
		}
	}
	out.unit = "t"
	out.dim = registry.Mass
	out.subst = product
	out.basis = substance.BasisUnspecified
	return nil
}

func (o options) hoursOrZero() float64 {
	if o.hours != nil {
		return *o.hours
	}
	return 0
}

// toBasis rescales between heating value bases. A quantity without a
// recorded basis is assumed to carry the other one.
func (out *Quantity) toBasis(target substance.Basis) error {
	if out.basis == target {
		return nil
	}
	if out.subst == "" {
		return fmt.Errorf("substance must be set to convert between HHV and LHV")
	}
	current := out.basis
	if current == substance.BasisUnspecified {
		if target == substance.LHV {
			current = substance.HHV
		} else {
			current = substance.LHV
		}
	}
	from, err := out.sys.Substances.HeatingValue(out.subst, current)
	if err != nil {
		return err
	}
	to, err := out.sys.Substances.HeatingValue(out.subst, target)
	if err != nil {
		return err
	}
	out.scale(to / from)
	out.basis = target
	return nil
}

// toUnit performs the unit conversion together with any currency exchange
// and inflation adjustment. When both the currency and the reference year
// change, the value is inflated in its original currency first and then
// exchanged at the target year's rate.
func (out *Quantity) toUnit(target string, o options) error {
	s := out.sys
	targetUnit := target
	if targetUnit == "" {
		targetUnit = out.unit
	}
	toDim, err := s.Units.Dimension(targetUnit)
	if err != nil {
		return err
	}

	wantYear := 0
	if o.refYear != nil {
		wantYear = *o.refYear
	}
	fromCur, fromHas := s.Exchange.DetectCurrency(out.unit)
	toCur, toHas := s.Exchange.DetectCurrency(targetUnit)
	yearChange := wantYear != 0 && wantYear != out.refYear
	currencyChange := fromHas && toHas && fromCur != toCur

	if yearChange && !fromHas {
		return &economic.UnsupportedCurrencyError{
			Currency: out.unit, Supported: s.Exchange.Currencies(),
		}
	}
	if yearChange && out.refYear == 0 {
		return &economic.MissingReferenceYearError{Unit: out.unit}
	}

	switch {
	case currencyChange && yearChange:
		s.advise("adjusting %s to %s and %d together: inflating in %s first, then exchanging at %d rates",
			out.unit, targetUnit, wantYear, fromCur, wantYear)
		inflation, err := s.Inflation.Factor(fromCur, out.refYear, wantYear)
		if err != nil {
			return err
		}
		exchange, err := s.Exchange.Factor(fromCur, toCur, wantYear)
		if err != nil {
			return err
		}
		unitFactor, err := s.Units.ConversionFactor(out.unit, substituteComponent(targetUnit, toCur, fromCur))
		if err != nil {
			return err
		}
		out.scale(inflation * exchange * unitFactor)
		out.unit, out.dim, out.refYear = targetUnit, toDim, wantYear
		return nil

	case currencyChange:
		year := economic.LatestYear
		if out.refYear != 0 {
			year = out.refYear
		}
		exchange, err := s.Exchange.Factor(fromCur, toCur, year)
		if err != nil {
			return err
		}
		unitFactor, err := s.Units.ConversionFactor(out.unit, substituteComponent(targetUnit, toCur, fromCur))
		if err != nil {
			return err
		}
		out.scale(exchange * unitFactor)
		out.unit, out.dim = targetUnit, toDim
		return nil

	case yearChange:
		unitFactor, err := s.Units.ConversionFactor(out.unit, targetUnit)
		if err != nil {
			return err
		}
		inflation, err := s.Inflation.Factor(fromCur, out.refYear, wantYear)
		if err != nil {
			return err
		}
		out.scale(unitFactor * inflation)
		out.unit, out.dim, out.refYear = targetUnit, toDim, wantYear
		return nil
	}

	if out.dim == toDim {
		unitFactor, err := s.Units.ConversionFactor(out.unit, targetUnit)
		if err != nil {
			return err
		}
		out.scale(unitFactor)
		out.unit = targetUnit
		return nil
	}

	// Cross-dimension path through base units.
	if !s.engine.Supported(out.dim, toDim) {
		return &registry.IncompatibleUnitsError{
			From: out.unit, To: targetUnit, FromDim: out.dim, ToDim: toDim,
		}
	}
	fromBase, _ := s.Units.BaseUnit(out.dim)
	toBase, _ := s.Units.BaseUnit(toDim)
	intoBase, err := s.Units.ConversionFactor(out.unit, fromBase)
	if err != nil {
		return err
	}
	crossFactor, err := s.engine.Convert(1, out.dim, toDim, convert.Params{
		Substance: out.subst,
		Basis:     out.basis,
		Hours:     o.hoursOrZero(),
	})
	if err != nil {
		return err
	}
	outOfBase, err := s.Units.ConversionFactor(toBase, targetUnit)
	if err != nil {
		return err
	}
	out.scale(intoBase * crossFactor * outOfBase)
	out.unit, out.dim = targetUnit, toDim
	return nil
}

// substituteComponent replaces exact matches of one component of a compound
// unit string. Used to factor a currency change out of a unit conversion.
func substituteComponent(unit, from, to string) string {
	parts := strings.Split(unit, "/")
	for i, p := range parts {
		if p == from {
			parts[i] = to
		}
	}
	return strings.Join(parts, "/")
}

// ForDuration integrates a power quantity over a duration in hours,
// returning energy in the corresponding unit.
func (q *Quantity) ForDuration(hours float64) (*Quantity, error) {
	energyUnit, err := q.sys.Units.CorrespondingUnit(q.unit, registry.Energy)
	if err != nil {
		return nil, err
	}
	powerUnit, err := q.sys.Units.CorrespondingUnit(energyUnit, registry.Power)
	if err != nil {
		return nil, err
	}
	f, err := q.sys.Units.ConversionFactor(q.unit, powerUnit)
	if err != nil {
		return nil, err
	}
	out := q.clone()
	out.scale(f * hours)
	out.unit = energyUnit
	out.dim = registry.Energy
	return out, nil
}

// AveragePower spreads an energy quantity over a duration in hours,
// returning power in the corresponding unit.
func (q *Quantity) AveragePower(hours float64) (*Quantity, error) {
	if hours == 0 {
		return nil, fmt.Errorf("duration must be non-zero")
	}
	powerUnit, err := q.sys.Units.CorrespondingUnit(q.unit, registry.Power)
	if err != nil {
		return nil, err
	}
	energyUnit, err := q.sys.Units.CorrespondingUnit(powerUnit, registry.Energy)
	if err != nil {
		return nil, err
	}
	f, err := q.sys.Units.ConversionFactor(q.unit, energyUnit)
	if err != nil {
		return nil, err
	}
	out := q.clone()
	out.scale(f / hours)
	out.unit = powerUnit
	out.dim = registry.Power
	return out, nil
}

// Emissions estimates CO2 output from the substance's carbon intensity,
// returning tonnes of CO2. Non-energy quantities are first converted to
// energy through the substance's heating value.
func (q *Quantity) Emissions() (*Quantity, error) {
	if q.subst == "" {
		return nil, fmt.Errorf("cannot estimate emissions for %q without a substance", q.unit)
	}
	energy := q
	if q.dim != registry.Energy || q.unit != "MWh" {
		var err error
		energy, err = q.To("MWh")
		if err != nil {
			return nil, err
		}
	}
	props, err := q.sys.Substances.Get(q.subst)
	if err != nil {
		return nil, err
	}
	out := energy.clone()
	// Carbon intensity is kg CO2 per MWh; emissions reported in tonnes.
	out.scale(props.CarbonIntensity / 1000.0)
	out.unit = "t"
	out.dim = registry.Mass
	out.subst = "CO2"
	out.basis = substance.BasisUnspecified
	return out, nil
}
