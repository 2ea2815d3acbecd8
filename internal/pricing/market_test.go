package pricing

import (
	"testing"

	"github.com/talgya/tradewinds/internal/dataset"
	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/trade"
)

func mustSettlement(t *testing.T, name string) trade.Settlement {
	t.Helper()
	s, ok := dataset.Default().Settlement(name)
	if !ok {
		t.Fatalf("settlement %q missing from default dataset", name)
	}
	return s
}

func TestBuildMarketCoversEveryCargoType(t *testing.T) {
	ds := dataset.Default()
	view, err := BuildMarket(mustSettlement(t, "Dunmore"), trade.SeasonSpring, ds, entropy.New(1))
	if err != nil {
		t.Fatalf("build market: %v", err)
	}
	if len(view.Entries) != len(ds.CargoTypes) {
		t.Fatalf("got %d entries, want %d", len(view.Entries), len(ds.CargoTypes))
	}
	if view.Slots.Slots < 1 {
		t.Fatalf("slot count %d, want >= 1", view.Slots.Slots)
	}
}

func TestBuildMarketPriceBounds(t *testing.T) {
	ds := dataset.Default()
	for _, name := range []string{"Caldera", "Dunmore", "Low Varrow", "Thornfield"} {
		s := mustSettlement(t, name)
		for _, season := range trade.Seasons() {
			view, err := BuildMarket(s, season, ds, entropy.New(3))
			if err != nil {
				t.Fatalf("%s/%s: %v", name, season, err)
			}
			for _, e := range view.Entries {
				ct, ok := ds.CargoType(e.Cargo)
				if !ok {
					t.Fatalf("entry for unknown cargo %q", e.Cargo)
				}
				if e.Price < ct.BasePrice*ds.Config.PriceFloor-1e-9 ||
					e.Price > ct.BasePrice*ds.Config.PriceCeiling+1e-9 {
					t.Fatalf("%s at %s/%s priced %v outside bounds of base %v",
						e.Cargo, name, season, e.Price, ct.BasePrice)
				}
				if e.Stock < 0 || e.Stock > view.Slots.Slots {
					t.Fatalf("%s stock %d outside [0,%d]", e.Cargo, e.Stock, view.Slots.Slots)
				}
			}
		}
	}
}

func TestBuildMarketSeasonalPrices(t *testing.T) {
	ds := dataset.Default()
	s := mustSettlement(t, "Dunmore")

	winter, err := BuildMarket(s, trade.SeasonWinter, ds, entropy.New(5))
	if err != nil {
		t.Fatalf("winter: %v", err)
	}
	autumn, err := BuildMarket(s, trade.SeasonAutumn, ds, entropy.New(5))
	if err != nil {
		t.Fatalf("autumn: %v", err)
	}

	grain := func(v MarketView) Entry {
		for _, e := range v.Entries {
			if e.Cargo == "Grain" {
				return e
			}
		}
		t.Fatal("no grain entry")
		return Entry{}
	}
	if grain(winter).Price <= grain(autumn).Price {
		t.Fatalf("grain should cost more in winter: winter=%v autumn=%v",
			grain(winter).Price, grain(autumn).Price)
	}
}

func TestBuildMarketContrabandNeedsSmugglers(t *testing.T) {
	ds := dataset.Default()
	// Greywatch has no contraband flag: chance 0, every contraband
	// good is blocked regardless of the roll.
	view, err := BuildMarket(mustSettlement(t, "Greywatch"), trade.SeasonSummer, ds, entropy.New(9))
	if err != nil {
		t.Fatalf("build market: %v", err)
	}
	for _, e := range view.Entries {
		if !e.Contraband {
			continue
		}
		if e.State != trade.EquilibriumBlocked || e.Available || e.Stock != 0 {
			t.Fatalf("contraband %q not blocked at flagless settlement: %+v", e.Cargo, e)
		}
	}
}

func TestBuildMarketDeterministicPerSeed(t *testing.T) {
	ds := dataset.Default()
	s := mustSettlement(t, "Saltreach")

	a, err := BuildMarket(s, trade.SeasonAutumn, ds, entropy.New(11))
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	b, err := BuildMarket(s, trade.SeasonAutumn, ds, entropy.New(11))
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	for i := range a.Entries {
		if a.Entries[i] != b.Entries[i] {
			t.Fatalf("entry %d differs between identical seeds:\n%+v\n%+v",
				i, a.Entries[i], b.Entries[i])
		}
	}
}

func TestBuildMarketProducerCategoriesStocked(t *testing.T) {
	ds := dataset.Default()
	// Saltreach flies the fishing flag: food supply transfer pushes
	// food goods toward oversupply and keeps them in stock.
	view, err := BuildMarket(mustSettlement(t, "Saltreach"), trade.SeasonSummer, ds, entropy.New(2))
	if err != nil {
		t.Fatalf("build market: %v", err)
	}
	for _, e := range view.Entries {
		if e.Category != "food" {
			continue
		}
		if e.Stock == 0 {
			t.Fatalf("fishing settlement has no %s in stock: %+v", e.Cargo, e)
		}
		if e.Supply <= e.Demand {
			t.Fatalf("food supply %v not above demand %v at fishing settlement", e.Supply, e.Demand)
		}
	}
}
