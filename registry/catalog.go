// Package registry maintains the unit catalog: the mapping from unit symbols
// to dimensions and conversion factors, the compound-unit algebra, and the
// correspondence tables used to pick natural result units.
package registry

import (
	"sort"
	"sync"

	"energyunits/internal/similar"
)

// MulRule describes one dimensional multiplication rule: A × B yields Result,
// with the result unit derived from the operand whose dimension is Source.
type MulRule struct {
	A, B   Dimension
	Result Dimension
	Source Dimension
}

// DivRule describes one dimensional division rule.
type DivRule struct {
	Num, Den Dimension
	Result   Dimension
}

// UnitInfo is a point-in-time description of a registered unit.
type UnitInfo struct {
	Unit          string
	Dimension     Dimension
	BaseUnit      string
	Factor        float64
	Corresponding string
	IsBase        bool
}

type dimPair struct {
	from, to Dimension
}

// Catalog is the unit registry. All lookups only read the tables, so a
// Catalog may be shared across goroutines; the Add/Remove extension API must
// finish before concurrent use begins or be synchronized by the caller.
type Catalog struct {
	mu            sync.RWMutex
	dimensions    map[string]Dimension
	factors       map[string]float64
	baseUnits     map[Dimension]string
	corresponding map[string]string
	standardUnits map[dimPair]string
	mulRules      []MulRule
	divRules      []DivRule

	cacheMu sync.RWMutex
	exprs   map[string]Expr
}

// NewCatalog returns an empty catalog. Most callers want DefaultCatalog.
func NewCatalog() *Catalog {
	return &Catalog{
		dimensions:    make(map[string]Dimension),
		factors:       make(map[string]float64),
		baseUnits:     make(map[Dimension]string),
		corresponding: make(map[string]string),
		standardUnits: make(map[dimPair]string),
		exprs:         make(map[string]Expr),
	}
}

// parse returns the cached expression for a unit string.
func (c *Catalog) parse(unit string) (Expr, error) {
	c.cacheMu.RLock()
	e, ok := c.exprs[unit]
	c.cacheMu.RUnlock()
	if ok {
		return e, nil
	}
	e, err := parseExpr(unit)
	if err != nil {
		return nil, err
	}
	c.cacheMu.Lock()
	c.exprs[unit] = e
	c.cacheMu.Unlock()
	return e, nil
}

// ParseExpr returns the structured form of a unit string.
func (c *Catalog) ParseExpr(unit string) (Expr, error) {
	return c.parse(unit)
}

// Dimension resolves the dimension of a simple or compound unit string. The
// empty string is DIMENSIONLESS.
func (c *Catalog) Dimension(unit string) (Dimension, error) {
	if unit == "" {
		return Dimensionless, nil
	}
	e, err := c.parse(unit)
	if err != nil {
		return "", err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dimensionOf(e)
}

func (c *Catalog) dimensionOf(e Expr) (Dimension, error) {
	switch v := e.(type) {
	case Simple:
		d, ok := c.dimensions[string(v)]
		if !ok {
			return "", &UnknownUnitError{Unit: string(v), Suggestions: c.suggest(string(v))}
		}
		return d, nil
	case Ratio:
		num, err := c.dimensionOf(v.Num)
		if err != nil {
			return "", err
		}
		den, err := c.dimensionOf(v.Den)
		if err != nil {
			return "", err
		}
		return Per(num, den), nil
	}
	return "", &MalformedUnitError{Unit: e.String()}
}

// Has reports whether unit resolves in this catalog.
func (c *Catalog) Has(unit string) bool {
	_, err := c.Dimension(unit)
	return err == nil
}

// ConversionFactor returns the factor f such that a value in from equals
// value × f in to. Both units must share a dimension.
func (c *Catalog) ConversionFactor(from, to string) (float64, error) {
	if from == to {
		if from == "" {
			return 1, nil
		}
		if _, err := c.Dimension(from); err != nil {
			return 0, err
		}
		return 1, nil
	}
	fromDim, err := c.Dimension(from)
	if err != nil {
		return 0, err
	}
	toDim, err := c.Dimension(to)
	if err != nil {
		return 0, err
	}
	if fromDim != toDim {
		return 0, &IncompatibleUnitsError{From: from, To: to, FromDim: fromDim, ToDim: toDim}
	}
	if fromDim == Dimensionless {
		return 1, nil
	}
	fe, err := c.parse(from)
	if err != nil {
		return 0, err
	}
	te, err := c.parse(to)
	if err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.factorBetween(fe, te)
}

// factorBetween computes the conversion factor for two parsed expressions of
// equal dimension. Callers hold at least a read lock.
func (c *Catalog) factorBetween(from, to Expr) (float64, error) {
	switch f := from.(type) {
	case Simple:
		switch t := to.(type) {
		case Simple:
			ff, err := c.simpleFactor(string(f))
			if err != nil {
				return 0, err
			}
			tf, err := c.simpleFactor(string(t))
			if err != nil {
				return 0, err
			}
			return ff / tf, nil
		case Ratio:
			inv, err := c.compoundSimpleFactor(t, f)
			if err != nil {
				return 0, err
			}
			return 1 / inv, nil
		}
	case Ratio:
		switch t := to.(type) {
		case Simple:
			return c.compoundSimpleFactor(f, t)
		case Ratio:
			num, err := c.factorBetween(f.Num, t.Num)
			if err != nil {
				return 0, err
			}
			den, err := c.factorBetween(f.Den, t.Den)
			if err != nil {
				return 0, err
			}
			return num / den, nil
		}
	}
	return 0, &MalformedUnitError{Unit: from.String()}
}

// simpleFactor is the factor from a simple unit to its dimension's base unit.
func (c *Catalog) simpleFactor(unit string) (float64, error) {
	f, ok := c.factors[unit]
	if !ok {
		return 0, &UnknownUnitError{Unit: unit, Suggestions: c.suggest(unit)}
	}
	return f, nil
}

// compoundSimpleFactor converts a compound expression to a simple unit of the
// same dimension. Only the ENERGY/TIME → POWER family reduces this way.
func (c *Catalog) compoundSimpleFactor(comp Ratio, simple Simple) (float64, error) {
	dim, err := c.dimensionOf(comp)
	if err != nil {
		return 0, err
	}
	if dim != Power {
		return 0, &IncompatibleUnitsError{
			From:   comp.String(),
			To:     simple.String(),
			Reason: "compound to simple conversion is only defined for ENERGY/TIME forms",
		}
	}
	energyBase, timeBase, powerBase := c.baseUnits[Energy], c.baseUnits[Time], c.baseUnits[Power]
	ef, err := c.factorBetween(comp.Num, Simple(energyBase))
	if err != nil {
		return 0, err
	}
	tf, err := c.factorBetween(comp.Den, Simple(timeBase))
	if err != nil {
		return 0, err
	}
	// One unit of the compound is ef/tf base power units.
	pf, err := c.factorBetween(Simple(powerBase), simple)
	if err != nil {
		return 0, err
	}
	return ef / tf * pf, nil
}

// CorrespondingUnit returns the registered counterpart of a unit in another
// dimension, e.g. MW → MWh. When no explicit pair exists, the standard unit
// pair for the dimension pair is used instead.
func (c *Catalog) CorrespondingUnit(unit string, target Dimension) (string, error) {
	dim, err := c.Dimension(unit)
	if err != nil {
		return "", err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cu, ok := c.corresponding[unit]; ok {
		e, perr := c.parse(cu)
		if perr == nil {
			if d, derr := c.dimensionOf(e); derr == nil && d == target {
				return cu, nil
			}
		}
	}
	if std, ok := c.standardUnits[dimPair{dim, target}]; ok {
		return std, nil
	}
	return "", &NoCorrespondenceError{Unit: unit, Target: target}
}

// MultiplicationResult looks up the dimensional-algebra rule for a product.
// The lookup is order independent; ok is false when no rule exists and the
// caller should fall back to a literal compound unit.
func (c *Catalog) MultiplicationResult(a, b Dimension) (result, source Dimension, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.mulRules {
		if (r.A == a && r.B == b) || (r.A == b && r.B == a) {
			return r.Result, r.Source, true
		}
	}
	return "", "", false
}

// DivisionResult looks up the dimensional-algebra rule for a quotient.
func (c *Catalog) DivisionResult(num, den Dimension) (Dimension, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.divRules {
		if r.Num == num && r.Den == den {
			return r.Result, true
		}
	}
	return "", false
}

// BaseUnit returns the base unit of a dimension.
func (c *Catalog) BaseUnit(d Dimension) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.baseUnits[d]
	return u, ok
}

// ListUnits returns unit → dimension for all registered simple units, or only
// those in dim when dim is non-empty.
func (c *Catalog) ListUnits(dim Dimension) map[string]Dimension {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Dimension)
	for u, d := range c.dimensions {
		if dim == "" || d == dim {
			out[u] = d
		}
	}
	return out
}

// ListDimensions returns the sorted set of dimensions with registered units.
func (c *Catalog) ListDimensions() []Dimension {
	c.mu.RLock()
	seen := make(map[Dimension]struct{})
	for _, d := range c.dimensions {
		seen[d] = struct{}{}
	}
	c.mu.RUnlock()
	out := make([]Dimension, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// UnitInfo describes a registered simple unit.
func (c *Catalog) UnitInfo(unit string) (UnitInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dim, ok := c.dimensions[unit]
	if !ok {
		return UnitInfo{}, &UnknownUnitError{Unit: unit, Suggestions: c.suggest(unit)}
	}
	base := c.baseUnits[dim]
	return UnitInfo{
		Unit:          unit,
		Dimension:     dim,
		BaseUnit:      base,
		Factor:        c.factors[unit],
		Corresponding: c.corresponding[unit],
		IsBase:        base == unit,
	}, nil
}

// suggest returns close matches for an unknown symbol. Callers hold a lock.
func (c *Catalog) suggest(symbol string) []string {
	known := make([]string, 0, len(c.dimensions))
	for u := range c.dimensions {
		known = append(known, u)
	}
	return similar.Closest(symbol, known, 3)
}
