package trade

import (
	"fmt"
	"strings"
)

// Season is one of the four trading seasons. Cargo prices are
// season-sensitive; cargo capacity is not.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Seasons returns the four seasons in calendar order.
func Seasons() []Season {
	return []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}
}

// Valid reports whether s is a known season token.
func (s Season) Valid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter:
		return true
	}
	return false
}

// Label returns a human-readable season name.
func (s Season) Label() string {
	switch s {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonAutumn:
		return "Autumn"
	case SeasonWinter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// ParseSeason normalizes a season token, rejecting unknown values.
func ParseSeason(raw string) (Season, error) {
	s := Season(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown season %q", raw)
	}
	return s, nil
}
