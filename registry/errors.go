package registry

import (
	"fmt"
	"strings"
)

// UnknownUnitError reports an unrecognized unit symbol, with close matches
// from the catalog when any exist.
type UnknownUnitError struct {
	Unit        string
	Suggestions []string
}

func (e *UnknownUnitError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unknown unit %q (did you mean %s?)", e.Unit, strings.Join(e.Suggestions, ", "))
	}
	return fmt.Sprintf("unknown unit %q", e.Unit)
}

// MalformedUnitError reports a compound unit string with empty components,
// such as "MW//h" or "/h".
type MalformedUnitError struct {
	Unit string
}

func (e *MalformedUnitError) Error() string {
	return fmt.Sprintf("malformed compound unit %q", e.Unit)
}

// IncompatibleUnitsError reports a factor request between units whose
// dimensions differ, or whose compound structure cannot be reduced.
type IncompatibleUnitsError struct {
	From, To string
	FromDim  Dimension
	ToDim    Dimension
	Reason   string
}

func (e *IncompatibleUnitsError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("incompatible units %q and %q: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("incompatible units %q (%s) and %q (%s)", e.From, e.FromDim, e.To, e.ToDim)
}

// NoCorrespondenceError reports that a unit has no registered counterpart in
// the requested dimension (e.g. a power unit without a matching energy unit).
type NoCorrespondenceError struct {
	Unit   string
	Target Dimension
}

func (e *NoCorrespondenceError) Error() string {
	return fmt.Sprintf("no corresponding %s unit for %q", e.Target, e.Unit)
}
