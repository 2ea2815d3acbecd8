package trade

import (
	"encoding/json"
	"testing"
)

func TestSizeRatingTable(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"CS", 5},
		{"C", 4},
		{"T", 3},
		{"ST", 2},
		{"V", 1},
		{"F", 1},
		{"M", 5},
		{"cs", 5},
		{"st", 2},
		{"  t  ", 3},
	}
	for _, tc := range tests {
		got := ResolveProperties(Settlement{Size: Code(tc.code)}).SizeNumeric
		if got != tc.want {
			t.Fatalf("size %q resolved to %d, want %d", tc.code, got, tc.want)
		}
		if got < 1 || got > 5 {
			t.Fatalf("size %q rating %d outside [1,5]", tc.code, got)
		}
	}
}

func TestSizeNumericPassthrough(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"4", 4},
		{"1", 1},
		{"9", 5},  // clamped
		{"-2", 1}, // clamped
		{"2.6", 3},
	}
	for _, tc := range tests {
		got := ResolveProperties(Settlement{Size: Code(tc.code)}).SizeNumeric
		if got != tc.want {
			t.Fatalf("numeric size %q resolved to %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestUnknownSizeDefaultsToOne(t *testing.T) {
	for _, code := range []string{"", "XX", "???", "hamlet"} {
		got := ResolveProperties(Settlement{Size: Code(code)}).SizeNumeric
		if got != 1 {
			t.Fatalf("size %q resolved to %d, want 1", code, got)
		}
	}
}

func TestWealthResolution(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"R", 5},
		{"w", 4},
		{"A", 3},
		{"P", 2},
		{"D", 1},
		{"3", 3},
		{"", 1},
		{"opulent", 1},
	}
	for _, tc := range tests {
		got := ResolveProperties(Settlement{Wealth: Code(tc.code)}).WealthNumeric
		if got != tc.want {
			t.Fatalf("wealth %q resolved to %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestProductionCategoriesLowerCased(t *testing.T) {
	s := Settlement{Flags: []string{"Trade", "CONTRABAND", " fishing "}}
	got := ResolveProperties(s).ProductionCategories
	want := []string{"trade", "contraband", "fishing"}
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNegativePopulationClampsToZero(t *testing.T) {
	if got := ResolveProperties(Settlement{Population: -50}).Population; got != 0 {
		t.Fatalf("population resolved to %d, want 0", got)
	}
}

func TestCodeUnmarshalsStringOrNumber(t *testing.T) {
	var s Settlement
	raw := `{"name":"Dunmore","size":"T","wealth":3}`
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	props := ResolveProperties(s)
	if props.SizeNumeric != 3 || props.WealthNumeric != 3 {
		t.Fatalf("got size=%d wealth=%d, want 3/3", props.SizeNumeric, props.WealthNumeric)
	}
}
