package rules_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ow-rando/internal/rules"
)

type RuleTestSuite struct {
	suite.Suite
	inv *rules.Inventory
}

func TestRuleSuite(t *testing.T) {
	suite.Run(t, new(RuleTestSuite))
}

func (s *RuleTestSuite) SetupTest() {
	s.inv = rules.NewInventory().
		Add(1, "Translator", 1).
		Add(1, "Nomai Warp Codes", 2).
		Add(2, "Scout", 1)
}

func (s *RuleTestSuite) TestEvaluate() {
	testCases := []struct {
		name   string
		rule   rules.Rule
		player int
		want   bool
	}{
		{name: "always", rule: rules.Always(), player: 1, want: true},
		{name: "never", rule: rules.Never(), player: 1, want: false},
		{name: "has held item", rule: rules.Has("Translator"), player: 1, want: true},
		{name: "has missing item", rule: rules.Has("Scout"), player: 1, want: false},
		{name: "items are per player", rule: rules.Has("Scout"), player: 2, want: true},
		{name: "count satisfied", rule: rules.HasCount("Nomai Warp Codes", 2), player: 1, want: true},
		{name: "count short", rule: rules.HasCount("Nomai Warp Codes", 3), player: 1, want: false},
		{
			name:   "and all held",
			rule:   rules.And(rules.Has("Translator"), rules.HasCount("Nomai Warp Codes", 2)),
			player: 1,
			want:   true,
		},
		{
			name:   "and one missing",
			rule:   rules.And(rules.Has("Translator"), rules.Has("Scout")),
			player: 1,
			want:   false,
		},
		{
			name:   "or one held",
			rule:   rules.Or(rules.Has("Scout"), rules.Has("Translator")),
			player: 1,
			want:   true,
		},
		{
			name:   "or none held",
			rule:   rules.Or(rules.Has("Scout"), rules.Has("Signalscope")),
			player: 1,
			want:   false,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, tc.rule.Evaluate(s.inv, tc.player))
		})
	}
}

func (s *RuleTestSuite) TestEvaluateDoesNotMutate() {
	rule := rules.And(rules.Has("Translator"), rules.Or(rules.Has("Scout"), rules.HasCount("Nomai Warp Codes", 2)))
	before := rule.String()

	for i := 0; i < 100; i++ {
		s.True(rule.Evaluate(s.inv, 1))
	}
	s.Equal(before, rule.String())
	s.Equal(2, s.inv.Count("Nomai Warp Codes", 1))
}

func (s *RuleTestSuite) TestNormalization() {
	s.True(rules.And().IsAlways())
	s.True(rules.Or().IsNever())
	s.True(rules.And(rules.Has("Scout"), rules.Never()).IsNever())
	s.True(rules.Or(rules.Has("Scout"), rules.Always()).IsAlways())
	s.Equal(rules.Has("Scout"), rules.And(rules.Always(), rules.Has("Scout")))
	s.Equal(rules.Has("Scout"), rules.HasCount("Scout", 1))

	nested := rules.And(rules.Has("A"), rules.And(rules.Has("B"), rules.Has("C")))
	s.Equal(rules.KindAnd, nested.Kind)
	s.Len(nested.Children, 3)
}

func (s *RuleTestSuite) TestItemsAndString() {
	rule := rules.And(
		rules.Has("Translator"),
		rules.Or(rules.Has("Scout"), rules.HasCount("Nomai Warp Codes", 2)),
		rules.Has("Scout"),
	)

	s.Equal([]string{"Nomai Warp Codes", "Scout", "Translator"}, rule.Items())
	s.Equal(`and(has("Translator"), or(has("Scout"), has("Nomai Warp Codes", 2)), has("Scout"))`, rule.String())
	s.Empty(rules.Always().Items())
}

func (s *RuleTestSuite) TestRemove() {
	s.inv.Remove(1, "Translator")
	s.False(rules.Has("Translator").Evaluate(s.inv, 1))
}
