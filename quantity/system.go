// Package quantity provides physical quantities with units, substance
// context, heating value basis and economic reference years, plus the
// conversion and arithmetic semantics connecting them.
package quantity

import (
	"fmt"

	"energyunits/convert"
	"energyunits/economic"
	"energyunits/logger"
	"energyunits/registry"
	"energyunits/substance"
)

// System bundles the catalogs a quantity converts against. A System is
// immutable once handed to quantities and safe for concurrent use.
type System struct {
	Units      *registry.Catalog
	Substances *substance.Catalog
	Inflation  *economic.Inflation
	Exchange   *economic.Exchange

	// Advisory receives non-fatal warnings about lossy operations, such
	// as adding quantities of different substances. Nil disables them.
	Advisory func(format string, args ...interface{})

	engine *convert.Engine
}

// NewSystem builds a system over explicit catalogs.
func NewSystem(units *registry.Catalog, subs *substance.Catalog,
	inflation *economic.Inflation, exchange *economic.Exchange) *System {
	return &System{
		Units:      units,
		Substances: subs,
		Inflation:  inflation,
		Exchange:   exchange,
		Advisory:   logAdvisory,
		engine:     convert.New(subs),
	}
}

// Default builds a system with the standard unit, substance, inflation and
// exchange tables.
func Default() *System {
	return NewSystem(
		registry.DefaultCatalog(),
		substance.DefaultCatalog(),
		economic.DefaultInflation(),
		economic.DefaultExchange(),
	)
}

func logAdvisory(format string, args ...interface{}) {
	logger.GetLogger().WithComponent("quantity").Warn(fmt.Sprintf(format, args...))
}

func (s *System) advise(format string, args ...interface{}) {
	if s.Advisory != nil {
		s.Advisory(format, args...)
	}
}
