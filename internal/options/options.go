// Package options holds the per-player option record.
package options

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/ow-rando/internal/errors"
)

// Goal selects the victory condition.
type Goal string

// Supported goals.
const (
	GoalSongOfFive Goal = "song_of_five"
	GoalSongOfSix  Goal = "song_of_six"
)

var victoryItems = map[Goal]string{
	GoalSongOfFive: "Victory - Song of Five",
	GoalSongOfSix:  "Victory - Song of Six",
}

// Goals lists the supported goals in a stable order.
func Goals() []Goal {
	return []Goal{GoalSongOfFive, GoalSongOfSix}
}

// VictoryItem returns the event item whose possession completes goal g.
func (g Goal) VictoryItem() (string, error) {
	item, ok := victoryItems[g]
	if !ok {
		return "", errors.Configuration("unknown goal %q", string(g)).
			WithMeta("goal", string(g))
	}
	return item, nil
}

// Options is one player's option record.
type Options struct {
	RandomizeCoordinates       bool `yaml:"randomize_coordinates" json:"randomize_coordinates"`
	RandomizeDarkBrambleLayout bool `yaml:"randomize_dark_bramble_layout" json:"randomize_dark_bramble_layout"`
	Goal                       Goal `yaml:"goal" json:"goal"`
	DeathLink                  bool `yaml:"death_link" json:"death_link"`
	Logsanity                  bool `yaml:"logsanity" json:"logsanity"`
}

// Default returns the options used when a field is not set.
func Default() Options {
	return Options{Goal: GoalSongOfFive}
}

// Validate checks every field.
func (o Options) Validate() error {
	vb := errors.NewValidationBuilder()

	allowed := make([]string, 0, len(victoryItems))
	for _, g := range Goals() {
		allowed = append(allowed, string(g))
	}
	errors.ValidateEnum("goal", string(o.Goal), allowed, vb)

	return vb.Build()
}

// Parse reads options from YAML. Missing fields keep their defaults; an
// empty document yields Default().
func Parse(b []byte) (Options, error) {
	opts := Default()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		return Options{}, errors.Configuration("failed to parse options: %v", err)
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
