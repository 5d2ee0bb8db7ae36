package rng_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/pkg/rng"
)

type SeededTestSuite struct {
	suite.Suite
}

func TestSeededSuite(t *testing.T) {
	suite.Run(t, new(SeededTestSuite))
}

func (s *SeededTestSuite) TestSameSeedSameSequence() {
	a := rng.NewSeeded(42)
	b := rng.NewSeeded(42)

	rollsA, err := a.RollN(50, 6)
	s.Require().NoError(err)
	rollsB, err := b.RollN(50, 6)
	s.Require().NoError(err)

	s.Equal(rollsA, rollsB)
	s.Equal(int64(50), a.Draws())
	s.Equal(int64(42), a.Seed())
}

func (s *SeededTestSuite) TestRollRange() {
	r := rng.NewSeeded(7)
	for i := 0; i < 500; i++ {
		v, err := r.Roll(6)
		s.Require().NoError(err)
		s.GreaterOrEqual(v, 1)
		s.LessOrEqual(v, 6)
	}
}

func (s *SeededTestSuite) TestInvalidSizes() {
	r := rng.NewSeeded(1)

	_, err := r.Roll(0)
	s.True(errors.IsInvalidArgument(err))

	_, err = r.RollN(-1, 6)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(int64(0), r.Draws())
}

func (s *SeededTestSuite) TestForPlayerIsStableAndDistinct() {
	s.Equal(rng.ForPlayer(99, 1).Seed(), rng.ForPlayer(99, 1).Seed())
	s.NotEqual(rng.ForPlayer(99, 1).Seed(), rng.ForPlayer(99, 2).Seed())
}

func (s *SeededTestSuite) TestShuffleIsPermutation() {
	values := []int{0, 1, 2, 3, 4, 5, 6, 7}
	s.Require().NoError(rng.Shuffle(rng.NewSeeded(3), values))

	s.ElementsMatch([]int{0, 1, 2, 3, 4, 5, 6, 7}, values)

	again := []int{0, 1, 2, 3, 4, 5, 6, 7}
	s.Require().NoError(rng.Shuffle(rng.NewSeeded(3), again))
	s.Equal(values, again)
}
