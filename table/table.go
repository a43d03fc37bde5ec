// Package table is a thin tabular layer over quantities: named numeric
// columns tagged with a unit, label columns, bulk conversion and per-row
// emissions.
package table

import (
	"fmt"
	"sort"

	"energyunits/quantity"
)

// UnknownColumnError reports a lookup of a column the frame does not hold.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

type column struct {
	values []float64
	unit   string
}

// Frame holds columns of equal length. Numeric columns carry a unit tag,
// label columns carry strings such as fuel names.
type Frame struct {
	sys     *quantity.System
	length  int
	columns map[string]*column
	labels  map[string][]string
}

// New returns an empty frame bound to a system.
func New(sys *quantity.System) *Frame {
	return &Frame{
		sys:     sys,
		length:  -1,
		columns: make(map[string]*column),
		labels:  make(map[string][]string),
	}
}

func (f *Frame) checkLength(name string, n int) error {
	if f.length >= 0 && n != f.length {
		return fmt.Errorf("column %q has %d rows, frame has %d", name, n, f.length)
	}
	return nil
}

func (f *Frame) taken(name string) bool {
	_, numeric := f.columns[name]
	_, label := f.labels[name]
	return numeric || label
}

// AddColumn adds a numeric column tagged with a unit. The unit must be
// known to the system's registry.
func (f *Frame) AddColumn(name string, values []float64, unit string) error {
	if name == "" {
		return fmt.Errorf("column name must not be empty")
	}
	if f.taken(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(values) == 0 {
		return fmt.Errorf("column %q has no rows", name)
	}
	if err := f.checkLength(name, len(values)); err != nil {
		return err
	}
	if _, err := f.sys.Units.Dimension(unit); err != nil {
		return err
	}
	f.columns[name] = &column{values: append([]float64(nil), values...), unit: unit}
	f.length = len(values)
	return nil
}

// AddLabels adds a string column, typically fuel names.
func (f *Frame) AddLabels(name string, labels []string) error {
	if name == "" {
		return fmt.Errorf("column name must not be empty")
	}
	if f.taken(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(labels) == 0 {
		return fmt.Errorf("column %q has no rows", name)
	}
	if err := f.checkLength(name, len(labels)); err != nil {
		return err
	}
	f.labels[name] = append([]string(nil), labels...)
	f.length = len(labels)
	return nil
}

// Len reports the number of rows, 0 for an empty frame.
func (f *Frame) Len() int {
	if f.length < 0 {
		return 0
	}
	return f.length
}

// Columns lists all column names sorted.
func (f *Frame) Columns() []string {
	names := make([]string, 0, len(f.columns)+len(f.labels))
	for name := range f.columns {
		names = append(names, name)
	}
	for name := range f.labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unit reports the unit tag of a numeric column.
func (f *Frame) Unit(name string) (string, error) {
	col, ok := f.columns[name]
	if !ok {
		return "", &UnknownColumnError{Column: name}
	}
	return col.unit, nil
}

// Values returns a copy of a numeric column.
func (f *Frame) Values(name string) ([]float64, error) {
	col, ok := f.columns[name]
	if !ok {
		return nil, &UnknownColumnError{Column: name}
	}
	return append([]float64(nil), col.values...), nil
}

// Labels returns a copy of a label column.
func (f *Frame) Labels(name string) ([]string, error) {
	labels, ok := f.labels[name]
	if !ok {
		return nil, &UnknownColumnError{Column: name}
	}
	return append([]string(nil), labels...), nil
}

// Quantity builds a series quantity from a numeric column.
func (f *Frame) Quantity(name string, opts ...quantity.Option) (*quantity.Quantity, error) {
	col, ok := f.columns[name]
	if !ok {
		return nil, &UnknownColumnError{Column: name}
	}
	return f.sys.NewSeries(col.values, col.unit, opts...)
}

// Convert rewrites a numeric column in the target unit and updates its
// unit tag. Options carry substance, basis or reference year context for
// cross-dimension targets.
func (f *Frame) Convert(name, target string, opts ...quantity.Option) error {
	col, ok := f.columns[name]
	if !ok {
		return &UnknownColumnError{Column: name}
	}
	q, err := f.sys.NewSeries(col.values, col.unit, opts...)
	if err != nil {
		return err
	}
	converted, err := q.To(target)
	if err != nil {
		return err
	}
	col.values = converted.Values()
	col.unit = converted.Unit()
	return nil
}

// Sum aggregates a numeric column into a scalar quantity in the column
// unit.
func (f *Frame) Sum(name string, opts ...quantity.Option) (*quantity.Quantity, error) {
	col, ok := f.columns[name]
	if !ok {
		return nil, &UnknownColumnError{Column: name}
	}
	var total float64
	for _, v := range col.values {
		total += v
	}
	return f.sys.New(total, col.unit, opts...)
}

// Emissions derives a CO2 column in tonnes from an energy column and a
// fuel label column, row by row. Non-combustible fuels yield zero.
func (f *Frame) Emissions(energyCol, fuelCol, outCol string) error {
	col, ok := f.columns[energyCol]
	if !ok {
		return &UnknownColumnError{Column: energyCol}
	}
	fuels, ok := f.labels[fuelCol]
	if !ok {
		return &UnknownColumnError{Column: fuelCol}
	}
	if f.taken(outCol) {
		return fmt.Errorf("column %q already exists", outCol)
	}

	out := make([]float64, len(col.values))
	for i, v := range col.values {
		q, err := f.sys.New(v, col.unit, quantity.WithSubstance(fuels[i]))
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		em, err := q.Emissions()
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		value, err := em.Value()
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = value
	}
	f.columns[outCol] = &column{values: out, unit: "t"}
	return nil
}
