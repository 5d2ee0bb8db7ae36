package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ow-rando/internal/pkg/idgen"
)

type IDGenTestSuite struct {
	suite.Suite
}

func TestIDGenSuite(t *testing.T) {
	suite.Run(t, new(IDGenTestSuite))
}

func (s *IDGenTestSuite) TestUUID() {
	gen := idgen.NewUUID("run")
	a, b := gen.Generate(), gen.Generate()

	s.NotEqual(a, b)
	s.True(strings.HasPrefix(a, "run_"))
	_, err := uuid.Parse(strings.TrimPrefix(a, "run_"))
	s.NoError(err)

	_, err = uuid.Parse(idgen.NewUUID("").Generate())
	s.NoError(err)
}

func (s *IDGenTestSuite) TestForSeed() {
	s.Equal(idgen.ForSeed("run", 42), idgen.ForSeed("run", 42))
	s.NotEqual(idgen.ForSeed("run", 42), idgen.ForSeed("run", 43))
}

func (s *IDGenTestSuite) TestSequential() {
	gen := idgen.NewSequential("slot")
	s.Equal("slot_1", gen.Generate())
	s.Equal("slot_2", gen.Generate())
	s.Equal("1", idgen.NewSequential("").Generate())
}
