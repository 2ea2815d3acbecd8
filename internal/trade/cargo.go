// Cargo slot capacity: how many discrete units of tradeable cargo a
// settlement can handle in a season.
package trade

import (
	"errors"
	"math"
)

// ErrNoConfig is returned when the caller supplies no cargo slot
// configuration at all. Missing individual sections are fine and
// contribute nothing; a nil config is a caller bug and should surface
// at the boundary instead of pricing goods off a meaningless number.
var ErrNoConfig = errors.New("trade: cargo slot config is nil")

// CargoSlotConfig tunes the capacity formula. Every section is
// optional: an absent additive term contributes 0, an absent
// multiplier contributes 1. Flag multiplier keys are lower-case.
type CargoSlotConfig struct {
	BasePerSize          map[int]float64    `json:"basePerSize,omitempty"`
	PopulationMultiplier float64            `json:"populationMultiplier,omitempty"`
	SizeMultiplier       float64            `json:"sizeMultiplier,omitempty"`
	HardCap              float64            `json:"hardCap,omitempty"`
	FlagMultipliers      map[string]float64 `json:"flagMultipliers,omitempty"`
}

// SlotStep is one line of the capacity breakdown shown to players.
// Value is the amount added, the multiplier applied, or the cap.
type SlotStep struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Running float64 `json:"running"`
}

// SlotResult is the rounded slot count plus the step-by-step breakdown
// that produced it.
type SlotResult struct {
	Slots int        `json:"slots"`
	Steps []SlotStep `json:"steps"`
}

// CalculateCargoSlots derives the cargo capacity for a settlement:
// base by size rating, plus population and size contributions, times
// each flag multiplier in flag-list order, clamped to the hard cap,
// rounded, never below 1.
//
// Flag multipliers commute, so the final count is independent of flag
// order; only the intermediate breakdown differs. The season parameter
// does not enter the formula — capacity is season-independent today,
// only per-cargo prices shift with the season.
func CalculateCargoSlots(s Settlement, season Season, cfg *CargoSlotConfig) (SlotResult, error) {
	if cfg == nil {
		return SlotResult{}, ErrNoConfig
	}

	props := ResolveProperties(s)

	base, ok := cfg.BasePerSize[props.SizeNumeric]
	if !ok {
		base = float64(props.SizeNumeric)
	}
	total := base
	steps := []SlotStep{{Label: "base", Value: base, Running: total}}

	if cfg.PopulationMultiplier != 0 && props.Population > 0 {
		add := float64(props.Population) * cfg.PopulationMultiplier
		total += add
		steps = append(steps, SlotStep{Label: "population", Value: add, Running: total})
	}

	if cfg.SizeMultiplier != 0 {
		add := float64(props.SizeNumeric) * cfg.SizeMultiplier
		total += add
		steps = append(steps, SlotStep{Label: "size", Value: add, Running: total})
	}

	// Multiplicative, applied in the settlement's flag order.
	for _, flag := range props.ProductionCategories {
		mult, ok := cfg.FlagMultipliers[flag]
		if !ok || mult == 1 {
			continue
		}
		total *= mult
		steps = append(steps, SlotStep{Label: "flag:" + flag, Value: mult, Running: total})
	}

	if cfg.HardCap > 0 && total > cfg.HardCap {
		total = cfg.HardCap
		steps = append(steps, SlotStep{Label: "cap", Value: cfg.HardCap, Running: total})
	}

	slots := int(math.Round(total))
	if slots < 1 {
		slots = 1
	}

	return SlotResult{Slots: slots, Steps: steps}, nil
}
