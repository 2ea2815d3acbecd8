// Package dataset loads and holds named trading datasets: settlements,
// cargo types, flag definitions, the trading configuration, and the
// character question tables. Datasets are swappable at runtime; once
// loaded they are treated as read-only by every calculation.
package dataset

import (
	"strings"

	"github.com/talgya/tradewinds/internal/trade"
)

// CargoType is one tradeable good.
type CargoType struct {
	Name            string                   `json:"name"`
	Category        string                   `json:"category"`
	BasePrice       float64                  `json:"basePrice"`
	Contraband      bool                     `json:"contraband,omitempty"`
	SeasonModifiers map[trade.Season]float64 `json:"seasonModifiers,omitempty"`
}

// SeasonModifier returns the price modifier for a season, 1 when the
// cargo defines none.
func (c CargoType) SeasonModifier(season trade.Season) float64 {
	if m, ok := c.SeasonModifiers[season]; ok && m != 0 {
		return m
	}
	return 1
}

// TradingConfig holds the dataset-level tuning for capacity and price.
type TradingConfig struct {
	CargoSlots      trade.CargoSlotConfig `json:"cargoSlots"`
	WealthModifiers map[int]float64       `json:"wealthModifiers,omitempty"`
	PriceFloor      float64               `json:"priceFloor,omitempty"`   // fraction of base price
	PriceCeiling    float64               `json:"priceCeiling,omitempty"` // fraction of base price
}

// WealthModifier returns the price modifier for a 1–5 wealth rating,
// 1 when the table has no entry.
func (c TradingConfig) WealthModifier(rating int) float64 {
	if m, ok := c.WealthModifiers[rating]; ok && m != 0 {
		return m
	}
	return 1
}

// Dataset is a named bundle of everything the engine needs.
type Dataset struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Settlements []trade.Settlement       `json:"settlements"`
	CargoTypes  []CargoType              `json:"cargoTypes"`
	Config      TradingConfig            `json:"config"`
	Flags       map[string]trade.FlagDef `json:"flags,omitempty"`
	Questions   map[string][]string      `json:"questions,omitempty"`

	raw []byte // original JSON, kept for persistence
}

// Raw returns the JSON the dataset was parsed from.
func (d *Dataset) Raw() []byte { return d.raw }

// Settlement looks up a settlement by exact name, case-insensitive.
func (d *Dataset) Settlement(name string) (trade.Settlement, bool) {
	for _, s := range d.Settlements {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return trade.Settlement{}, false
}

// CargoType looks up a cargo type by exact name, case-insensitive.
func (d *Dataset) CargoType(name string) (CargoType, bool) {
	for _, c := range d.CargoTypes {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return CargoType{}, false
}

// normalize lower-cases every key the calculation layer looks up:
// flag definition names, flag multiplier names, and cargo categories.
func (d *Dataset) normalize() {
	if len(d.Flags) > 0 {
		flags := make(map[string]trade.FlagDef, len(d.Flags))
		for name, def := range d.Flags {
			flags[strings.ToLower(name)] = def
		}
		d.Flags = flags
	}

	if fm := d.Config.CargoSlots.FlagMultipliers; len(fm) > 0 {
		mults := make(map[string]float64, len(fm))
		for name, m := range fm {
			mults[strings.ToLower(name)] = m
		}
		d.Config.CargoSlots.FlagMultipliers = mults
	}

	for i := range d.CargoTypes {
		d.CargoTypes[i].Category = strings.ToLower(d.CargoTypes[i].Category)
	}
}
