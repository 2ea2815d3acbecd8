// Package questions implements the character questions add-on: random
// roleplay prompts drawn from per-category tables. Tables usually come
// from the active dataset; a built-in set covers datasets that define
// none.
package questions

import (
	"fmt"
	"sort"
	"sync"

	"github.com/talgya/tradewinds/internal/entropy"
)

// Deck draws prompts from category tables, avoiding back-to-back
// repeats within a category.
type Deck struct {
	mu     sync.Mutex
	tables map[string][]string
	last   map[string]int
	rng    *entropy.Source
}

// NewDeck creates a deck over the given tables. Nil or empty tables
// fall back to the built-in set.
func NewDeck(tables map[string][]string, rng *entropy.Source) *Deck {
	if len(tables) == 0 {
		tables = DefaultTables()
	}
	if rng == nil {
		rng = entropy.New(0)
	}
	return &Deck{
		tables: tables,
		last:   make(map[string]int),
		rng:    rng,
	}
}

// Categories lists the available categories, sorted.
func (d *Deck) Categories() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	cats := make([]string, 0, len(d.tables))
	for c := range d.tables {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// Draw returns a random prompt from the category, never the same
// prompt twice in a row when the table has more than one entry.
func (d *Deck) Draw(category string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	table, ok := d.tables[category]
	if !ok || len(table) == 0 {
		return "", fmt.Errorf("questions: unknown category %q", category)
	}
	if len(table) == 1 {
		return table[0], nil
	}

	idx := d.rng.Intn(len(table))
	if last, drawn := d.last[category]; drawn && idx == last {
		idx = (idx + 1 + d.rng.Intn(len(table)-1)) % len(table)
	}
	d.last[category] = idx
	return table[idx], nil
}

// DefaultTables returns the built-in question tables.
func DefaultTables() map[string][]string {
	return map[string][]string{
		"background": {
			"What did you leave behind in the last port?",
			"Who taught you to haggle, and what did the lesson cost?",
			"What cargo will you never carry again?",
		},
		"ambition": {
			"What would you trade your ship for?",
			"When you finally retire, which harbor takes you?",
		},
	}
}
