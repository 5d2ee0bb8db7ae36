package rules_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/rules"
)

type CompileTestSuite struct {
	suite.Suite
	known rules.KnownItem
}

func TestCompileSuite(t *testing.T) {
	suite.Run(t, new(CompileTestSuite))
}

func (s *CompileTestSuite) SetupTest() {
	items := map[string]bool{
		"Translator":       true,
		"Scout":            true,
		"Signalscope":      true,
		"Nomai Warp Codes": true,
	}
	s.known = func(name string) bool { return items[name] }
}

func (s *CompileTestSuite) decode(doc string) []rules.Expression {
	var exprs []rules.Expression
	s.Require().NoError(yaml.Unmarshal([]byte(doc), &exprs))
	return exprs
}

func (s *CompileTestSuite) TestCompile() {
	testCases := []struct {
		name string
		doc  string
		want rules.Rule
	}{
		{
			name: "empty list is always",
			doc:  `[]`,
			want: rules.Always(),
		},
		{
			name: "single item",
			doc:  `[{item: Translator}]`,
			want: rules.Has("Translator"),
		},
		{
			name: "counted item",
			doc:  `[{item: Nomai Warp Codes, count: 2}]`,
			want: rules.HasCount("Nomai Warp Codes", 2),
		},
		{
			name: "list is implicit and",
			doc:  `[{item: Translator}, {item: Scout}]`,
			want: rules.And(rules.Has("Translator"), rules.Has("Scout")),
		},
		{
			name: "anyOf alias",
			doc: `
- anyOf:
    - item: Scout
    - item: Signalscope
`,
			want: rules.Or(rules.Has("Scout"), rules.Has("Signalscope")),
		},
		{
			name: "nested",
			doc: `
- item: Translator
- or:
    - item: Scout
    - and:
        - item: Signalscope
        - item: Nomai Warp Codes
          count: 2
`,
			want: rules.And(
				rules.Has("Translator"),
				rules.Or(
					rules.Has("Scout"),
					rules.And(rules.Has("Signalscope"), rules.HasCount("Nomai Warp Codes", 2)),
				),
			),
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, err := rules.Compile(s.decode(tc.doc), s.known)
			s.Require().NoError(err)
			s.Equal(tc.want, got)
		})
	}
}

func (s *CompileTestSuite) TestCompileErrors() {
	testCases := []struct {
		name     string
		doc      string
		dangling bool
	}{
		{name: "unknown item", doc: `[{item: Jetpack Booster}]`, dangling: true},
		{name: "unknown nested item", doc: `[{or: [{item: Scout}, {item: Ghost}]}]`, dangling: true},
		{name: "empty node", doc: `[{}]`},
		{name: "two forms", doc: `[{item: Scout, and: [{item: Translator}]}]`},
		{name: "count without item", doc: `[{count: 2, or: [{item: Scout}]}]`},
		{name: "negative count", doc: `[{item: Scout, count: -1}]`},
		{name: "empty or", doc: `[{or: []}]`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := rules.Compile(s.decode(tc.doc), s.known)
			s.Require().Error(err)
			s.True(errors.IsConfiguration(err))
			if tc.dangling {
				s.True(errors.IsFailedPrecondition(err))
			}
		})
	}
}

func (s *CompileTestSuite) TestNilKnownAcceptsAnyItem() {
	got, err := rules.Compile([]rules.Expression{{Item: "Anything"}}, nil)
	s.Require().NoError(err)
	s.Equal(rules.Has("Anything"), got)
}
