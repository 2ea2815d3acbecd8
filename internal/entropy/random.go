// Package entropy provides the random source used for contraband
// checks and question draws. Seeded sources are fully deterministic,
// which keeps market generation reproducible for a given seed; an
// unseeded source draws its seed from crypto/rand.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// Source is a concurrency-safe random source.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a source. Seed 0 means "pick one": the seed is read from
// crypto/rand so independent runs diverge.
func New(seed int64) *Source {
	if seed == 0 {
		seed = cryptoSeed()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float returns a random float64 in [0, 1).
func (s *Source) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Intn returns a random int in [0, n).
func (s *Source) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// cryptoSeed reads a seed from crypto/rand, falling back to the clock.
func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		slog.Warn("crypto seed unavailable, using clock", "error", err)
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
