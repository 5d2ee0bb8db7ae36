// Package rng provides the seeded random source handed to the topology
// generators.
//
// # Determinism
//
// A Seeded roller is fully determined by its seed: two rollers built from
// the same seed return the same sequence for the same calls. Each generation
// call owns its roller; nothing here is shared between players.
package rng

import (
	"math/rand"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/ow-rando/internal/errors"
)

// Seeded implements dice.Roller on top of a private math/rand source.
type Seeded struct {
	seed  int64
	src   *rand.Rand
	draws int64
}

// Verify that Seeded implements dice.Roller
var _ dice.Roller = (*Seeded)(nil)

// NewSeeded creates a roller for the given seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)), // #nosec G404 -- reproducible seeds, not secrets
	}
}

// ForPlayer derives an independent roller for one player of a multiworld
// from the base seed.
func ForPlayer(baseSeed int64, player int) *Seeded {
	// splitmix64 step so neighbouring players do not get neighbouring streams
	z := uint64(baseSeed) + uint64(player)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return NewSeeded(int64(z))
}

// Seed returns the seed the roller was built from.
func (s *Seeded) Seed() int64 {
	return s.seed
}

// Draws returns how many values have been drawn so far.
func (s *Seeded) Draws() int64 {
	return s.draws
}

// Roll returns a value in [1, size].
func (s *Seeded) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive: %d", size)
	}
	s.draws++
	return s.src.Intn(size) + 1, nil
}

// RollN rolls count dice of the given size.
func (s *Seeded) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative: %d", count)
	}
	results := make([]int, count)
	for i := range results {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// Shuffle permutes values in place with Fisher-Yates, drawing from roller.
func Shuffle[T any](roller dice.Roller, values []T) error {
	for i := len(values) - 1; i > 0; i-- {
		r, err := roller.Roll(i + 1)
		if err != nil {
			return errors.Wrap(err, "failed to draw shuffle index")
		}
		j := r - 1
		values[i], values[j] = values[j], values[i]
	}
	return nil
}
