package registry

import "strings"

// Expr is a parsed unit expression: either a bare symbol or a ratio of two
// expressions. Ratios nest to the right, so "USD/MWh/a" reads USD/(MWh/a),
// matching how compound symbols are written in the data tables.
type Expr interface {
	String() string
	expr()
}

// Simple is a single unit symbol.
type Simple string

func (s Simple) String() string { return string(s) }
func (Simple) expr()            {}

// Ratio is a numerator/denominator pair.
type Ratio struct {
	Num Expr
	Den Expr
}

func (r Ratio) String() string { return r.Num.String() + "/" + r.Den.String() }
func (Ratio) expr()            {}

// parseExpr parses a non-empty unit string. Empty components (leading or
// trailing slashes, doubled slashes) are rejected rather than producing a
// degenerate dimension.
func parseExpr(unit string) (Expr, error) {
	i := strings.Index(unit, "/")
	if i < 0 {
		return Simple(unit), nil
	}
	num, den := unit[:i], unit[i+1:]
	if num == "" || den == "" || strings.HasPrefix(den, "/") {
		return nil, &MalformedUnitError{Unit: unit}
	}
	denExpr, err := parseExpr(den)
	if err != nil {
		return nil, &MalformedUnitError{Unit: unit}
	}
	return Ratio{Num: Simple(num), Den: denExpr}, nil
}
