package trade

// EquilibriumState describes the supply/demand balance for a cargo
// type at a settlement.
type EquilibriumState uint8

const (
	EquilibriumBalanced     EquilibriumState = iota
	EquilibriumOversupplied                  // supply well above demand
	EquilibriumUndersupplied                 // demand outpacing supply
	EquilibriumDesperate                     // demand far beyond supply
	EquilibriumBlocked                       // trade barred (e.g. contraband)
)

// Label returns the human-readable state name.
func (e EquilibriumState) Label() string {
	switch e {
	case EquilibriumBalanced:
		return "Balanced"
	case EquilibriumOversupplied:
		return "Oversupplied"
	case EquilibriumUndersupplied:
		return "Undersupplied"
	case EquilibriumDesperate:
		return "Desperate"
	case EquilibriumBlocked:
		return "Blocked"
	default:
		return "Unknown"
	}
}

// Classify maps a supply/demand pair to its equilibrium state.
// Blocked is never produced here; callers set it when trade is barred
// outright.
func Classify(supply, demand float64) EquilibriumState {
	if supply <= 0 {
		supply = 0.01
	}
	if demand <= 0 {
		demand = 0.01
	}
	ratio := supply / demand
	switch {
	case ratio >= 1.5:
		return EquilibriumOversupplied
	case ratio <= 0.25:
		return EquilibriumDesperate
	case ratio <= 0.67:
		return EquilibriumUndersupplied
	default:
		return EquilibriumBalanced
	}
}
