package dataset

import (
	"strings"
	"testing"

	"github.com/talgya/tradewinds/internal/trade"
)

func TestDefaultDatasetLoads(t *testing.T) {
	d := Default()
	if d.Name != "standard" {
		t.Fatalf("default dataset named %q, want standard", d.Name)
	}
	if len(d.Settlements) == 0 || len(d.CargoTypes) == 0 {
		t.Fatalf("default dataset empty: %d settlements, %d cargo types", len(d.Settlements), len(d.CargoTypes))
	}
	if len(d.Config.CargoSlots.BasePerSize) == 0 {
		t.Fatal("default dataset missing basePerSize table")
	}
}

func TestParseRejectsInvalidDataset(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing name", `{"settlements":[],"cargoTypes":[{"name":"Grain","category":"food","basePrice":2}],"config":{"cargoSlots":{}}}`},
		{"no cargo types", `{"name":"x","settlements":[],"cargoTypes":[],"config":{"cargoSlots":{}}}`},
		{"negative price", `{"name":"x","settlements":[],"cargoTypes":[{"name":"Grain","category":"food","basePrice":-1}],"config":{"cargoSlots":{}}}`},
		{"bad season key", `{"name":"x","settlements":[],"cargoTypes":[{"name":"Grain","category":"food","basePrice":2,"seasonModifiers":{"monsoon":1.1}}],"config":{"cargoSlots":{}}}`},
	}
	for _, tc := range tests {
		if _, err := Parse([]byte(tc.raw)); err == nil {
			t.Fatalf("%s: expected error, got none", tc.name)
		}
	}
}

func TestParseNormalizesLookupKeys(t *testing.T) {
	raw := `{
		"name": "x",
		"settlements": [{"name": "Port Anse", "size": "T", "flags": ["Trade"]}],
		"cargoTypes": [{"name": "Grain", "category": "Food", "basePrice": 2}],
		"config": {"cargoSlots": {"flagMultipliers": {"Trade": 1.2}}},
		"flags": {"Trade": {"supplyTransfer": 0.1}}
	}`
	d, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := d.Flags["trade"]; !ok {
		t.Fatalf("flag key not lower-cased: %v", d.Flags)
	}
	if _, ok := d.Config.CargoSlots.FlagMultipliers["trade"]; !ok {
		t.Fatalf("flag multiplier key not lower-cased: %v", d.Config.CargoSlots.FlagMultipliers)
	}
	if d.CargoTypes[0].Category != "food" {
		t.Fatalf("category not lower-cased: %q", d.CargoTypes[0].Category)
	}
}

func TestSeasonAndWealthModifierDefaults(t *testing.T) {
	c := CargoType{Name: "Stone", Category: "raw", BasePrice: 3}
	if m := c.SeasonModifier(trade.SeasonWinter); m != 1 {
		t.Fatalf("season modifier without table = %v, want 1", m)
	}
	var cfg TradingConfig
	if m := cfg.WealthModifier(4); m != 1 {
		t.Fatalf("wealth modifier without table = %v, want 1", m)
	}
}

func TestRegistrySwitchAndCallbacks(t *testing.T) {
	a := Default()
	raw := strings.Replace(string(a.Raw()), `"name": "standard"`, `"name": "other"`, 1)
	b, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	r := NewRegistry()
	r.Add(a)
	r.Add(b)

	if r.ActiveName() != "standard" {
		t.Fatalf("first added dataset not active: %q", r.ActiveName())
	}

	var notified string
	r.OnSwitch(func(d *Dataset) { notified = d.Name })

	if err := r.Switch("other"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if r.Active().Name != "other" {
		t.Fatalf("active dataset %q, want other", r.Active().Name)
	}
	if notified != "other" {
		t.Fatalf("switch callback saw %q, want other", notified)
	}

	if err := r.Switch("nope"); err == nil {
		t.Fatal("expected error switching to unknown dataset")
	}
}

func TestFindSettlementFuzzy(t *testing.T) {
	d := Default()

	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"Dunmore", "Dunmore", true},
		{"dunmore", "Dunmore", true},
		{"dunmor", "Dunmore", true},
		{"Saltreech", "Saltreach", true},
		{"zzzzzz", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		s, ok := d.FindSettlement(tc.query)
		if ok != tc.ok {
			t.Fatalf("FindSettlement(%q) ok=%v, want %v", tc.query, ok, tc.ok)
		}
		if ok && s.Name != tc.want {
			t.Fatalf("FindSettlement(%q) = %q, want %q", tc.query, s.Name, tc.want)
		}
	}
}
