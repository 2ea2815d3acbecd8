package trade

import "testing"

func TestEquilibriumLabels(t *testing.T) {
	tests := []struct {
		state EquilibriumState
		want  string
	}{
		{EquilibriumBalanced, "Balanced"},
		{EquilibriumOversupplied, "Oversupplied"},
		{EquilibriumUndersupplied, "Undersupplied"},
		{EquilibriumDesperate, "Desperate"},
		{EquilibriumBlocked, "Blocked"},
		{EquilibriumState(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.state.Label(); got != tc.want {
			t.Fatalf("state %d labeled %q, want %q", tc.state, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		supply, demand float64
		want           EquilibriumState
	}{
		{1, 1, EquilibriumBalanced},
		{3, 1, EquilibriumOversupplied},
		{1, 2, EquilibriumUndersupplied},
		{1, 5, EquilibriumDesperate},
		{0, 1, EquilibriumDesperate},
		{1, 0, EquilibriumOversupplied},
	}
	for _, tc := range tests {
		if got := Classify(tc.supply, tc.demand); got != tc.want {
			t.Fatalf("Classify(%v, %v) = %s, want %s", tc.supply, tc.demand, got.Label(), tc.want.Label())
		}
	}
}
