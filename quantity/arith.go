package quantity

import (
	"fmt"
	"math"

	"energyunits/registry"
)

func floatsClose(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

// alignValues broadcasts a scalar against a series and checks lengths.
func alignValues(a, b *Quantity) ([]float64, []float64, bool, error) {
	av, bv := a.values, b.values
	switch {
	case len(av) == len(bv):
	case len(av) == 1:
		expanded := make([]float64, len(bv))
		for i := range expanded {
			expanded[i] = av[0]
		}
		av = expanded
	case len(bv) == 1:
		expanded := make([]float64, len(av))
		for i := range expanded {
			expanded[i] = bv[0]
		}
		bv = expanded
	default:
		return nil, nil, false, fmt.Errorf("length mismatch: %d values vs %d", len(av), len(bv))
	}
	return av, bv, a.scalar && b.scalar, nil
}

// Add returns q + other, converting other to q's unit first.
func (q *Quantity) Add(other *Quantity) (*Quantity, error) {
	return q.combine(other, 1)
}

// Sub returns q - other, converting other to q's unit first.
func (q *Quantity) Sub(other *Quantity) (*Quantity, error) {
	return q.combine(other, -1)
}

func (q *Quantity) combine(other *Quantity, sign float64) (*Quantity, error) {
	conv, err := other.To(q.unit)
	if err != nil {
		return nil, err
	}
	av, bv, scalar, err := alignValues(q, conv)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(av))
	for i := range values {
		values[i] = av[i] + sign*bv[i]
	}
	out := &Quantity{values: values, scalar: scalar, unit: q.unit, dim: q.dim, sys: q.sys}
	if q.subst == conv.subst {
		out.subst = q.subst
	} else if q.subst != "" && conv.subst != "" {
		q.sys.advise("combining quantities of different substances (%q and %q), dropping substance",
			q.subst, conv.subst)
	}
	if q.basis == conv.basis {
		out.basis = q.basis
	}
	if q.refYear == conv.refYear {
		out.refYear = q.refYear
	}
	return out, nil
}

// mergeMeta carries shared metadata onto a derived quantity. The substance
// survives when both sides agree or only one side carries one.
func mergeMeta(out *Quantity, a, b *Quantity) *Quantity {
	switch {
	case a.subst == b.subst:
		out.subst = a.subst
	case a.subst == "":
		out.subst = b.subst
	case b.subst == "":
		out.subst = a.subst
	}
	if a.basis == b.basis {
		out.basis = a.basis
	}
	if a.refYear == b.refYear {
		out.refYear = a.refYear
	}
	return out
}

// MulScalar returns q scaled by a plain number.
func (q *Quantity) MulScalar(k float64) *Quantity {
	out := q.clone()
	out.scale(k)
	return out
}

// DivScalar returns q divided by a plain number.
func (q *Quantity) DivScalar(k float64) (*Quantity, error) {
	if k == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	return q.MulScalar(1 / k), nil
}

// Mul returns the product of two quantities. A compound unit cancels
// against a matching operand (USD/kW times MW gives USD), a registered
// dimension rule derives physical products (MW times h gives MWh), and
// anything else yields a literal product unit.
func (q *Quantity) Mul(other *Quantity) (*Quantity, error) {
	s := q.sys

	if other.unit == "" {
		return q.scaleBy(other)
	}
	if q.unit == "" {
		return other.scaleBy(q)
	}

	if out, ok, err := q.cancelAgainst(other); ok || err != nil {
		return out, err
	}
	if out, ok, err := other.cancelAgainst(q); ok || err != nil {
		return out, err
	}

	if result, source, ok := s.Units.MultiplicationResult(q.dim, other.dim); ok {
		src, oth := q, other
		if q.dim != source {
			src, oth = other, q
		}
		resultUnit, err := s.Units.CorrespondingUnit(src.unit, result)
		if err != nil {
			return nil, err
		}
		base, bok := s.Units.BaseUnit(oth.dim)
		if !bok {
			return nil, &registry.NoCorrespondenceError{Unit: oth.unit, Target: result}
		}
		f, err := s.Units.ConversionFactor(oth.unit, base)
		if err != nil {
			return nil, err
		}
		av, bv, scalar, err := alignValues(src, oth)
		if err != nil {
			return nil, err
		}
		values := make([]float64, len(av))
		for i := range values {
			values[i] = av[i] * bv[i] * f
		}
		resultDim, err := s.Units.Dimension(resultUnit)
		if err != nil {
			return nil, err
		}
		out := &Quantity{values: values, scalar: scalar, unit: resultUnit, dim: resultDim, sys: s}
		return mergeMeta(out, q, other), nil
	}

	// Literal product unit. Such quantities keep their value but cannot be
	// converted further.
	av, bv, scalar, err := alignValues(q, other)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(av))
	for i := range values {
		values[i] = av[i] * bv[i]
	}
	out := &Quantity{
		values: values,
		scalar: scalar,
		unit:   q.unit + "·" + other.unit,
		dim:    registry.Times(q.dim, other.dim),
		sys:    s,
	}
	return mergeMeta(out, q, other), nil
}

// scaleBy multiplies by a dimensionless quantity.
func (q *Quantity) scaleBy(factor *Quantity) (*Quantity, error) {
	av, bv, scalar, err := alignValues(q, factor)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(av))
	for i := range values {
		values[i] = av[i] * bv[i]
	}
	out := q.clone()
	out.values = values
	out.scalar = scalar
	return out, nil
}

// cancelAgainst applies smart unit cancellation: when q carries a compound
// unit whose denominator matches the other operand's dimension, the other
// operand converts to that denominator and cancels it.
func (q *Quantity) cancelAgainst(other *Quantity) (*Quantity, bool, error) {
	s := q.sys
	e, err := s.Units.ParseExpr(q.unit)
	if err != nil {
		return nil, false, nil
	}
	ratio, ok := e.(registry.Ratio)
	if !ok {
		return nil, false, nil
	}
	denUnit := ratio.Den.String()
	denDim, err := s.Units.Dimension(denUnit)
	if err != nil || denDim != other.dim {
		return nil, false, nil
	}
	f, err := s.Units.ConversionFactor(other.unit, denUnit)
	if err != nil {
		return nil, false, err
	}
	av, bv, scalar, err := alignValues(q, other)
	if err != nil {
		return nil, false, err
	}
	values := make([]float64, len(av))
	for i := range values {
		values[i] = av[i] * bv[i] * f
	}
	numUnit := ratio.Num.String()
	numDim, err := s.Units.Dimension(numUnit)
	if err != nil {
		return nil, false, err
	}
	out := &Quantity{values: values, scalar: scalar, unit: numUnit, dim: numDim, sys: s}
	return mergeMeta(out, q, other), true, nil
}

// Div returns the quotient of two quantities. Same-dimension operands give a
// dimensionless ratio, registered dimension rules derive physical results
// (MWh over h gives MW, MWh over MW gives h), and anything else yields a
// literal compound unit.
func (q *Quantity) Div(other *Quantity) (*Quantity, error) {
	s := q.sys

	if other.unit == "" {
		inverted := other.clone()
		for i, v := range inverted.values {
			if v == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			inverted.values[i] = 1 / v
		}
		return q.scaleBy(inverted)
	}

	if q.dim == other.dim {
		conv, err := other.To(q.unit)
		if err != nil {
			return nil, err
		}
		av, bv, scalar, err := alignValues(q, conv)
		if err != nil {
			return nil, err
		}
		values := make([]float64, len(av))
		for i := range values {
			if bv[i] == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			values[i] = av[i] / bv[i]
		}
		out := &Quantity{values: values, scalar: scalar, unit: "", dim: registry.Dimensionless, sys: s}
		if q.refYear == other.refYear {
			out.refYear = q.refYear
		}
		return out, nil
	}

	if result, ok := s.Units.DivisionResult(q.dim, other.dim); ok {
		numBase, nok := s.Units.BaseUnit(q.dim)
		denBase, dok := s.Units.BaseUnit(other.dim)
		resBase, rok := s.Units.BaseUnit(result)
		if nok && dok && rok {
			nf, err := s.Units.ConversionFactor(q.unit, numBase)
			if err != nil {
				return nil, err
			}
			df, err := s.Units.ConversionFactor(other.unit, denBase)
			if err != nil {
				return nil, err
			}
			resultUnit, err := s.Units.CorrespondingUnit(q.unit, result)
			if err != nil {
				resultUnit = resBase
			}
			rf, err := s.Units.ConversionFactor(resBase, resultUnit)
			if err != nil {
				return nil, err
			}
			av, bv, scalar, err := alignValues(q, other)
			if err != nil {
				return nil, err
			}
			values := make([]float64, len(av))
			for i := range values {
				if bv[i] == 0 {
					return nil, fmt.Errorf("division by zero")
				}
				values[i] = av[i] * nf / (bv[i] * df) * rf
			}
			out := &Quantity{values: values, scalar: scalar, unit: resultUnit, dim: result, sys: s}
			return mergeMeta(out, q, other), nil
		}
	}

	// Literal compound unit.
	unit := q.unit + "/" + other.unit
	dim, err := s.Units.Dimension(unit)
	if err != nil {
		return nil, err
	}
	av, bv, scalar, err := alignValues(q, other)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(av))
	for i := range values {
		if bv[i] == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		values[i] = av[i] / bv[i]
	}
	out := &Quantity{values: values, scalar: scalar, unit: unit, dim: dim, sys: s}
	return mergeMeta(out, q, other), nil
}

func (q *Quantity) comparable(other *Quantity) ([]float64, []float64, error) {
	conv, err := other.To(q.unit)
	if err != nil {
		return nil, nil, err
	}
	av, bv, _, err := alignValues(q, conv)
	return av, bv, err
}

// Less reports whether every value of q is below other after conversion.
func (q *Quantity) Less(other *Quantity) (bool, error) {
	return q.ordered(other, func(a, b float64) bool { return a < b })
}

// LessEqual reports whether every value of q is at most other.
func (q *Quantity) LessEqual(other *Quantity) (bool, error) {
	return q.ordered(other, func(a, b float64) bool { return a <= b })
}

// Greater reports whether every value of q is above other.
func (q *Quantity) Greater(other *Quantity) (bool, error) {
	return q.ordered(other, func(a, b float64) bool { return a > b })
}

// GreaterEqual reports whether every value of q is at least other.
func (q *Quantity) GreaterEqual(other *Quantity) (bool, error) {
	return q.ordered(other, func(a, b float64) bool { return a >= b })
}

func (q *Quantity) ordered(other *Quantity, cmp func(a, b float64) bool) (bool, error) {
	av, bv, err := q.comparable(other)
	if err != nil {
		return false, err
	}
	for i := range av {
		if !cmp(av[i], bv[i]) {
			return false, nil
		}
	}
	return true, nil
}

// Equal reports whether all values match after conversion. Incomparable
// quantities are not equal.
func (q *Quantity) Equal(other *Quantity) bool {
	av, bv, err := q.comparable(other)
	if err != nil {
		return false
	}
	for i := range av {
		if !floatsClose(av[i], bv[i]) {
			return false
		}
	}
	return true
}

// NotEqual reports whether any value differs after conversion.
func (q *Quantity) NotEqual(other *Quantity) bool {
	return !q.Equal(other)
}
