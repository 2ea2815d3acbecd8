// Flag effect composition: settlement flags ("trade", "contraband")
// carry modifier bundles defined per dataset; a settlement's effective
// modifiers are the aggregate across all of its flags.
package trade

import "strings"

// AvailabilityBonus shifts how many producers and seekers show up for
// a cargo category. Both sides are signed.
type AvailabilityBonus struct {
	Producers float64 `json:"producers,omitempty"`
	Seekers   float64 `json:"seekers,omitempty"`
}

// FlagDef is the dataset-supplied definition of one settlement flag.
type FlagDef struct {
	Description            string             `json:"description,omitempty"`
	SupplyTransfer         float64            `json:"supplyTransfer,omitempty"`
	DemandTransfer         float64            `json:"demandTransfer,omitempty"`
	AvailabilityBonus      *AvailabilityBonus `json:"availabilityBonus,omitempty"`
	CategorySupplyTransfer map[string]float64 `json:"categorySupplyTransfer,omitempty"`
	CategoryDemandTransfer map[string]float64 `json:"categoryDemandTransfer,omitempty"`
	ContrabandChance       float64            `json:"contrabandChance,omitempty"`
	Quality                float64            `json:"quality,omitempty"`
	UITags                 []string           `json:"uiTags,omitempty"`
}

// EffectiveModifiers aggregates flag effects for one settlement.
// Transfers and bonuses sum; category maps merge by summing colliding
// keys; quality combines additively on the percent-above-1.0 basis.
type EffectiveModifiers struct {
	SupplyTransfer   float64            `json:"supply_transfer"`
	DemandTransfer   float64            `json:"demand_transfer"`
	ProducerBonus    float64            `json:"producer_bonus"`
	SeekerBonus      float64            `json:"seeker_bonus"`
	CategorySupply   map[string]float64 `json:"category_supply,omitempty"`
	CategoryDemand   map[string]float64 `json:"category_demand,omitempty"`
	ContrabandChance float64            `json:"contraband_chance"`
	QualityBonus     float64            `json:"quality_bonus"`
	UITags           []string           `json:"ui_tags,omitempty"`
}

// QualityMultiplier returns the combined quality factor. Two flags
// with quality 1.1 and 1.2 combine to 1.3, not 1.32.
func (m EffectiveModifiers) QualityMultiplier() float64 {
	return 1 + m.QualityBonus
}

// ComposeFlagEffects aggregates the effects of every settlement flag
// that has a definition in source. Flags without a definition are
// silently ignored: a settlement with unknown flags trades like a
// generic one. Lookup is by lower-cased flag name, in the settlement's
// flag-list order.
func ComposeFlagEffects(s Settlement, source map[string]FlagDef) EffectiveModifiers {
	mods := EffectiveModifiers{
		CategorySupply: make(map[string]float64),
		CategoryDemand: make(map[string]float64),
	}

	for _, raw := range s.Flags {
		def, ok := source[strings.ToLower(strings.TrimSpace(raw))]
		if !ok {
			continue
		}

		mods.SupplyTransfer += def.SupplyTransfer
		mods.DemandTransfer += def.DemandTransfer
		if def.AvailabilityBonus != nil {
			mods.ProducerBonus += def.AvailabilityBonus.Producers
			mods.SeekerBonus += def.AvailabilityBonus.Seekers
		}
		for cat, v := range def.CategorySupplyTransfer {
			mods.CategorySupply[strings.ToLower(cat)] += v
		}
		for cat, v := range def.CategoryDemandTransfer {
			mods.CategoryDemand[strings.ToLower(cat)] += v
		}
		mods.ContrabandChance += def.ContrabandChance
		if def.Quality != 0 {
			mods.QualityBonus += def.Quality - 1
		}
		mods.UITags = append(mods.UITags, def.UITags...)
	}

	return mods
}
