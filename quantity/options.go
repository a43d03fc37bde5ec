package quantity

import "energyunits/substance"

type options struct {
	substance *string
	basis     *substance.Basis
	refYear   *int
	hours     *float64
}

// Option sets optional metadata on construction, or requests a metadata
// change during To.
type Option func(*options)

// WithSubstance attaches a substance name, or requests a combustion product
// conversion when passed to To with a different substance.
func WithSubstance(name string) Option {
	return func(o *options) { o.substance = &name }
}

// WithBasis attaches a heating value basis, or requests a basis conversion
// when passed to To.
func WithBasis(b substance.Basis) Option {
	return func(o *options) { o.basis = &b }
}

// WithReferenceYear attaches the price year of a cost figure, or requests an
// inflation adjustment when passed to To.
func WithReferenceYear(year int) Option {
	return func(o *options) { o.refYear = &year }
}

// WithDuration sets the duration in hours linking power and energy in a
// cross-dimension conversion. The default is one hour.
func WithDuration(hours float64) Option {
	return func(o *options) { o.hours = &hours }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
