// Package trade implements the settlement trading rules: settlement
// property resolution, cargo slot capacity, flag effect composition,
// and supply/demand equilibrium states. Every function here is a pure
// transformation over its inputs; configuration is treated as a
// read-only snapshot for the duration of a call.
package trade

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Code is a size or wealth token. Datasets write these either as a
// letter code ("T", "CS") or as a bare number, so it unmarshals from
// both JSON forms.
type Code string

func (c *Code) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Code(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// Settlement is a location record with the fields that affect trade.
// All fields are optional; resolution substitutes safe defaults.
type Settlement struct {
	Name       string   `json:"name"`
	Region     string   `json:"region,omitempty"`
	Size       Code     `json:"size,omitempty"`
	Wealth     Code     `json:"wealth,omitempty"`
	Population int      `json:"population,omitempty"`
	Flags      []string `json:"flags,omitempty"`
	Ruler      string   `json:"ruler,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// Size codes: city-state, city, town, small town, village, fort, metropolis.
var sizeRatings = map[string]int{
	"cs": 5,
	"c":  4,
	"t":  3,
	"st": 2,
	"v":  1,
	"f":  1,
	"m":  5,
}

// Wealth codes: rich, wealthy, average, poor, destitute.
var wealthRatings = map[string]int{
	"r": 5,
	"w": 4,
	"a": 3,
	"p": 2,
	"d": 1,
}

// Properties is the canonical numeric form of a settlement.
type Properties struct {
	SizeNumeric          int      `json:"size_numeric"`
	WealthNumeric        int      `json:"wealth_numeric"`
	Population           int      `json:"population"`
	ProductionCategories []string `json:"production_categories"`
}

// ResolveProperties normalizes a settlement record into 1–5 ratings and
// the lower-cased flag list used for every multiplier lookup. It never
// fails: unknown codes rate 1, negative populations count as 0.
func ResolveProperties(s Settlement) Properties {
	pop := s.Population
	if pop < 0 {
		pop = 0
	}

	cats := make([]string, 0, len(s.Flags))
	for _, f := range s.Flags {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			cats = append(cats, f)
		}
	}

	return Properties{
		SizeNumeric:          rating(string(s.Size), sizeRatings),
		WealthNumeric:        rating(string(s.Wealth), wealthRatings),
		Population:           pop,
		ProductionCategories: cats,
	}
}

// rating maps a code to its 1–5 rating: table lookup first
// (case-insensitive), then numeric passthrough clamped to [1,5],
// otherwise 1.
func rating(code string, table map[string]int) int {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return 1
	}
	if r, ok := table[code]; ok {
		return r
	}
	if n, err := strconv.ParseFloat(code, 64); err == nil && n != 0 {
		r := int(math.Round(n))
		if r < 1 {
			r = 1
		}
		if r > 5 {
			r = 5
		}
		return r
	}
	return 1
}
