package registry

import (
	"fmt"
	"strings"
)

// AddUnit registers a simple unit with an explicit factor to the dimension's
// base unit. The first unit added for a dimension becomes its base unit and
// must carry factor 1.
func (c *Catalog) AddUnit(unit string, dim Dimension, factor float64) error {
	if unit == "" || strings.Contains(unit, "/") || strings.ContainsAny(unit, " \t") {
		return &MalformedUnitError{Unit: unit}
	}
	if factor <= 0 {
		return fmt.Errorf("unit %q: conversion factor must be positive, got %v", unit, factor)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.baseUnits[dim]; !ok {
		if factor != 1 {
			return fmt.Errorf("unit %q: first unit of dimension %s must have factor 1", unit, dim)
		}
		c.baseUnits[dim] = unit
	}
	c.dimensions[unit] = dim
	c.factors[unit] = factor
	return nil
}

// AddUnitWithReference registers a unit defined relative to an existing unit
// of the same dimension: one new unit equals value reference units.
func (c *Catalog) AddUnitWithReference(unit string, value float64, reference string) error {
	c.mu.RLock()
	dim, ok := c.dimensions[reference]
	ref, hasFactor := c.factors[reference]
	var sugg []string
	if !ok || !hasFactor {
		sugg = c.suggest(reference)
	}
	c.mu.RUnlock()
	if !ok || !hasFactor {
		return &UnknownUnitError{Unit: reference, Suggestions: sugg}
	}
	return c.AddUnit(unit, dim, value*ref)
}

// AddCorrespondingUnit declares a bidirectional counterpart pair, e.g. a
// power unit and the energy unit it accumulates over one hour.
func (c *Catalog) AddCorrespondingUnit(a, b string) {
	c.mu.Lock()
	c.corresponding[a] = b
	c.corresponding[b] = a
	c.mu.Unlock()
}

// SetStandardUnit declares the fallback target unit for conversions from one
// dimension into another when no per-unit correspondence exists.
func (c *Catalog) SetStandardUnit(from, to Dimension, unit string) {
	c.mu.Lock()
	c.standardUnits[dimPair{from, to}] = unit
	c.mu.Unlock()
}

// AddMultiplicationRule registers a dimensional product rule.
func (c *Catalog) AddMultiplicationRule(r MulRule) {
	c.mu.Lock()
	c.mulRules = append(c.mulRules, r)
	c.mu.Unlock()
}

// AddDivisionRule registers a dimensional quotient rule.
func (c *Catalog) AddDivisionRule(r DivRule) {
	c.mu.Lock()
	c.divRules = append(c.divRules, r)
	c.mu.Unlock()
}

// RemoveUnit unregisters a simple unit. Base units cannot be removed while
// their dimension still exists.
func (c *Catalog) RemoveUnit(unit string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	dim, ok := c.dimensions[unit]
	if !ok {
		return &UnknownUnitError{Unit: unit, Suggestions: c.suggest(unit)}
	}
	if c.baseUnits[dim] == unit {
		return fmt.Errorf("unit %q: cannot remove the base unit of dimension %s", unit, dim)
	}
	delete(c.dimensions, unit)
	delete(c.factors, unit)
	if cu, ok := c.corresponding[unit]; ok {
		delete(c.corresponding, cu)
		delete(c.corresponding, unit)
	}
	return nil
}
