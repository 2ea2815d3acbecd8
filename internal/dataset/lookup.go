package dataset

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/talgya/tradewinds/internal/trade"
)

// FindSettlement resolves a possibly misspelled settlement name. Exact
// matches (case-insensitive) win; otherwise the closest name within a
// small edit distance is returned, so "dunmor" still finds Dunmore.
func (d *Dataset) FindSettlement(query string) (trade.Settlement, bool) {
	if s, ok := d.Settlement(query); ok {
		return s, true
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return trade.Settlement{}, false
	}

	// Tolerate roughly one typo per four characters.
	maxDist := 1 + len(q)/4

	best := maxDist + 1
	var found trade.Settlement
	for _, s := range d.Settlements {
		dist := levenshtein.ComputeDistance(q, strings.ToLower(s.Name))
		if dist < best {
			best = dist
			found = s
		}
	}
	if best > maxDist {
		return trade.Settlement{}, false
	}
	return found, true
}
