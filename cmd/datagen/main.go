// Command datagen generates a plausible trading dataset: settlements
// scattered over a noise-derived landscape, with size, wealth,
// population, and flags following the local terrain. Cargo types, flag
// definitions, and trading config are carried over from the built-in
// standard dataset so the output is immediately usable.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/tradewinds/internal/dataset"
	"github.com/talgya/tradewinds/internal/trade"
)

var regionNames = []string{
	"North Reaches", "Amber Coast", "The Midlands", "Saltmarsh",
	"The Highfells", "Westmoor", "The Sunken Vale", "Eastmarch",
}

var nameStarts = []string{
	"Cal", "Dun", "Salt", "Grey", "Thorn", "Kiln", "Vel", "Var",
	"Ash", "Brack", "Fen", "Hol", "Mar", "Oster", "Rook", "Wyn",
}

var nameEnds = []string{
	"more", "reach", "watch", "field", "hollow", "mare", "row",
	"ford", "haven", "stead", "bury", "wick", "gate", "mouth",
}

func main() {
	name := flag.String("name", "generated", "dataset name")
	count := flag.Int("settlements", 12, "number of settlements")
	seed := flag.Int64("seed", 0, "noise seed (0 = random)")
	out := flag.String("out", "datasets/generated.json", "output path")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *seed == 0 {
		*seed = rand.Int63()
	}

	d := generate(*name, *count, *seed)

	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		slog.Error("encode failed", "error", err)
		os.Exit(1)
	}
	// Round-trip through the loader so anything datagen emits is
	// guaranteed to validate.
	if _, err := dataset.Parse(raw); err != nil {
		slog.Error("generated dataset failed validation", "error", err)
		os.Exit(1)
	}
	os.MkdirAll(filepath.Dir(*out), 0755)
	if err := os.WriteFile(*out, raw, 0644); err != nil {
		slog.Error("write failed", "path", *out, "error", err)
		os.Exit(1)
	}

	totalPop := 0
	for _, s := range d.Settlements {
		totalPop += s.Population
	}
	slog.Info("dataset written",
		"path", *out,
		"seed", *seed,
		"settlements", len(d.Settlements),
		"population", humanize.Comma(int64(totalPop)),
	)
	for _, s := range d.Settlements {
		fmt.Printf("  %-14s %-14s size=%-2s wealth=%-2s pop=%-8s %v\n",
			s.Name, s.Region, s.Size, s.Wealth,
			humanize.Comma(int64(s.Population)), s.Flags)
	}
}

// generate places settlements on a noise landscape. Three independent
// layers drive the result: prosperity picks the sites and sizes,
// terrain decides production flags, lawlessness decides smuggling.
func generate(name string, count int, seed int64) *dataset.Dataset {
	prosperity := opensimplex.NewNormalized(seed)
	terrain := opensimplex.NewNormalized(seed + 1)
	lawless := opensimplex.NewNormalized(seed + 2)
	rng := rand.New(rand.NewSource(seed))

	base := dataset.Default()
	d := &dataset.Dataset{
		Name:        name,
		Description: fmt.Sprintf("Generated dataset (seed %d).", seed),
		CargoTypes:  base.CargoTypes,
		Config:      base.Config,
		Flags:       base.Flags,
		Questions:   base.Questions,
	}

	used := make(map[string]bool)
	hasCapital := false

	for len(d.Settlements) < count {
		x := rng.Float64() * 16
		y := rng.Float64() * 16

		p := octaveNoise(prosperity, x, y, 4, 0.3, 0.5)
		if p < 0.35 {
			continue // nobody settles here
		}
		t := octaveNoise(terrain, x, y, 3, 0.25, 0.5)
		l := octaveNoise(lawless, x, y, 3, 0.2, 0.5)

		sName := settlementName(rng, used)
		size, popBase := sizeFor(p)

		var flags []string
		switch {
		case t < 0.35:
			flags = append(flags, "fishing")
		case t > 0.68:
			flags = append(flags, "mining")
		default:
			flags = append(flags, "farming")
		}
		if p > 0.6 {
			flags = append(flags, "trade")
		}
		if p > 0.55 && t > 0.45 && t < 0.68 {
			flags = append(flags, "artisan")
		}
		if l > 0.66 {
			flags = append(flags, "contraband")
		}
		if !hasCapital && size == "CS" {
			flags = append(flags, "capital")
			hasCapital = true
		}

		region := regionNames[(int(x/4)+4*int(y/4))%len(regionNames)]

		d.Settlements = append(d.Settlements, trade.Settlement{
			Name:       sName,
			Region:     region,
			Size:       trade.Code(size),
			Wealth:     trade.Code(wealthFor(p, l)),
			Population: int(float64(popBase) * (0.5 + p)),
			Flags:      flags,
		})
	}

	return d
}

// sizeFor maps prosperity to a size code and a population baseline.
func sizeFor(p float64) (string, int) {
	switch {
	case p > 0.85:
		return "CS", 20000
	case p > 0.72:
		return "C", 8000
	case p > 0.58:
		return "T", 1200
	case p > 0.45:
		return "ST", 500
	default:
		return "V", 180
	}
}

// wealthFor maps prosperity to a wealth code, dragged down where the
// law is thin.
func wealthFor(p, lawless float64) string {
	if lawless > 0.75 {
		p -= 0.15
	}
	switch {
	case p > 0.8:
		return "R"
	case p > 0.65:
		return "W"
	case p > 0.5:
		return "A"
	case p > 0.38:
		return "P"
	default:
		return "D"
	}
}

func settlementName(rng *rand.Rand, used map[string]bool) string {
	for {
		name := nameStarts[rng.Intn(len(nameStarts))] + nameEnds[rng.Intn(len(nameEnds))]
		if !used[name] {
			used[name] = true
			return name
		}
	}
}

// octaveNoise samples layered noise for natural-looking variation.
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	var total, amplitude, maxValue float64
	amplitude = 1
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	v := total / maxValue
	return math.Max(0, math.Min(1, v))
}
