package questions

import (
	"testing"

	"github.com/talgya/tradewinds/internal/entropy"
)

func TestDrawNoImmediateRepeat(t *testing.T) {
	d := NewDeck(map[string][]string{
		"crew": {"a", "b", "c"},
	}, entropy.New(1))

	prev, err := d.Draw("crew")
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	for i := 0; i < 50; i++ {
		got, err := d.Draw("crew")
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if got == prev {
			t.Fatalf("draw %d repeated %q", i, got)
		}
		prev = got
	}
}

func TestDrawSingleEntryTable(t *testing.T) {
	d := NewDeck(map[string][]string{"solo": {"only"}}, entropy.New(1))
	for i := 0; i < 3; i++ {
		got, err := d.Draw("solo")
		if err != nil || got != "only" {
			t.Fatalf("draw = %q, %v", got, err)
		}
	}
}

func TestDrawUnknownCategory(t *testing.T) {
	d := NewDeck(nil, entropy.New(1))
	if _, err := d.Draw("rumors"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestEmptyTablesFallBackToDefaults(t *testing.T) {
	d := NewDeck(nil, entropy.New(1))
	cats := d.Categories()
	if len(cats) == 0 {
		t.Fatal("no default categories")
	}
	if _, err := d.Draw(cats[0]); err != nil {
		t.Fatalf("draw from defaults: %v", err)
	}
}
