// Package pricing builds per-settlement market views: what each cargo
// type costs and how available it is at a settlement in a season. It
// sits on top of the trade rules — cargo slots set capacity, composed
// flag effects shift supply, demand, and quality, and each cargo's
// seasonal modifier moves the price.
package pricing

import (
	"fmt"
	"math"

	"github.com/talgya/tradewinds/internal/dataset"
	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/trade"
)

// Default price bounds as fractions of base price, used when the
// dataset config leaves them unset.
const (
	defaultPriceFloor   = 0.25
	defaultPriceCeiling = 4.0
)

// Entry is the market line for one cargo type.
type Entry struct {
	Cargo      string                 `json:"cargo"`
	Category   string                 `json:"category"`
	Price      float64                `json:"price"`
	Supply     float64                `json:"supply"`
	Demand     float64                `json:"demand"`
	State      trade.EquilibriumState `json:"state"`
	StateLabel string                 `json:"state_label"`
	Stock      int                    `json:"stock"`
	Available  bool                   `json:"available"`
	Contraband bool                   `json:"contraband,omitempty"`
}

// MarketView is everything a visiting trader sees at a settlement.
type MarketView struct {
	Settlement string                   `json:"settlement"`
	Season     trade.Season             `json:"season"`
	Properties trade.Properties         `json:"properties"`
	Slots      trade.SlotResult         `json:"slots"`
	Modifiers  trade.EffectiveModifiers `json:"modifiers"`
	Entries    []Entry                  `json:"entries"`
}

// BuildMarket prices every cargo type in the dataset for one
// settlement and season. Deterministic for a given rng seed: the only
// random input is the contraband availability roll.
func BuildMarket(s trade.Settlement, season trade.Season, ds *dataset.Dataset, rng *entropy.Source) (MarketView, error) {
	slots, err := trade.CalculateCargoSlots(s, season, &ds.Config.CargoSlots)
	if err != nil {
		return MarketView{}, fmt.Errorf("cargo slots for %s: %w", s.Name, err)
	}

	props := trade.ResolveProperties(s)
	mods := trade.ComposeFlagEffects(s, ds.Flags)

	produced := make(map[string]bool, len(props.ProductionCategories))
	for _, cat := range props.ProductionCategories {
		produced[cat] = true
	}

	view := MarketView{
		Settlement: s.Name,
		Season:     season,
		Properties: props,
		Slots:      slots,
		Modifiers:  mods,
		Entries:    make([]Entry, 0, len(ds.CargoTypes)),
	}

	for _, ct := range ds.CargoTypes {
		entry := priceCargo(ct, season, ds.Config, props, mods, slots.Slots, produced[ct.Category], rng)
		view.Entries = append(view.Entries, entry)
	}
	return view, nil
}

func priceCargo(ct dataset.CargoType, season trade.Season, cfg dataset.TradingConfig,
	props trade.Properties, mods trade.EffectiveModifiers, slots int, producedHere bool,
	rng *entropy.Source) Entry {

	supply := 1 + mods.SupplyTransfer + mods.CategorySupply[ct.Category]
	demand := 1 + mods.DemandTransfer + mods.CategoryDemand[ct.Category]
	if supply < 0.05 {
		supply = 0.05
	}
	if demand < 0.05 {
		demand = 0.05
	}

	state := trade.Classify(supply, demand)

	price := ct.BasePrice *
		ct.SeasonModifier(season) *
		cfg.WealthModifier(props.WealthNumeric) *
		(demand / supply) *
		mods.QualityMultiplier()

	floor := cfg.PriceFloor
	if floor == 0 {
		floor = defaultPriceFloor
	}
	ceiling := cfg.PriceCeiling
	if ceiling == 0 {
		ceiling = defaultPriceCeiling
	}
	if price < ct.BasePrice*floor {
		price = ct.BasePrice * floor
	}
	if price > ct.BasePrice*ceiling {
		price = ct.BasePrice * ceiling
	}

	// Stock: the settlement's slot capacity shifted by the local
	// supply/demand balance, plus the producer bonus for goods made
	// here. Capacity is the hard ceiling.
	stock := int(math.Round(float64(slots) * supply / demand))
	if producedHere {
		stock += int(math.Round(mods.ProducerBonus))
	}
	if stock < 0 {
		stock = 0
	}
	if stock > slots {
		stock = slots
	}

	// Contraband only reaches the market when the smuggling roll
	// succeeds; otherwise the good is blocked here outright.
	if ct.Contraband {
		chance := mods.ContrabandChance
		if chance < 0 {
			chance = 0
		}
		if chance > 1 {
			chance = 1
		}
		if rng == nil || rng.Float() >= chance {
			state = trade.EquilibriumBlocked
			stock = 0
		}
	}

	return Entry{
		Cargo:      ct.Name,
		Category:   ct.Category,
		Price:      math.Round(price*100) / 100,
		Supply:     supply,
		Demand:     demand,
		State:      state,
		StateLabel: state.Label(),
		Stock:      stock,
		Available:  stock > 0 && state != trade.EquilibriumBlocked,
		Contraband: ct.Contraband,
	}
}
