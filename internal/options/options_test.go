package options_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/options"
)

type OptionsTestSuite struct {
	suite.Suite
}

func TestOptionsSuite(t *testing.T) {
	suite.Run(t, new(OptionsTestSuite))
}

func (s *OptionsTestSuite) TestParse() {
	testCases := []struct {
		name string
		doc  string
		want options.Options
	}{
		{
			name: "empty document uses defaults",
			doc:  "",
			want: options.Default(),
		},
		{
			name: "all fields",
			doc: `
randomize_coordinates: true
randomize_dark_bramble_layout: true
goal: song_of_six
death_link: true
logsanity: true
`,
			want: options.Options{
				RandomizeCoordinates:       true,
				RandomizeDarkBrambleLayout: true,
				Goal:                       options.GoalSongOfSix,
				DeathLink:                  true,
				Logsanity:                  true,
			},
		},
		{
			name: "partial keeps default goal",
			doc:  "logsanity: true\n",
			want: options.Options{Goal: options.GoalSongOfFive, Logsanity: true},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, err := options.Parse([]byte(tc.doc))
			s.Require().NoError(err)
			s.Equal(tc.want, got)
		})
	}
}

func (s *OptionsTestSuite) TestParseErrors() {
	testCases := []struct {
		name string
		doc  string
	}{
		{name: "unknown goal", doc: "goal: song_of_seven\n"},
		{name: "unknown field", doc: "randomize_everything: true\n"},
		{name: "wrong type", doc: "death_link: maybe\n"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := options.Parse([]byte(tc.doc))
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OptionsTestSuite) TestVictoryItem() {
	item, err := options.GoalSongOfFive.VictoryItem()
	s.Require().NoError(err)
	s.Equal("Victory - Song of Five", item)

	item, err = options.GoalSongOfSix.VictoryItem()
	s.Require().NoError(err)
	s.Equal("Victory - Song of Six", item)

	_, err = options.Goal("").VictoryItem()
	s.True(errors.IsConfiguration(err))
}

func (s *OptionsTestSuite) TestValidate() {
	s.NoError(options.Default().Validate())

	err := options.Options{Goal: "eye"}.Validate()
	s.Require().Error(err)
	s.Contains(err.Error(), "goal")
}
