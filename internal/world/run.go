package world

import (
	"strings"

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/slotdata"
)

// RunOutput is what Run collects from the hooks.
type RunOutput struct {
	Summary slotdata.Summary
	Spoiler string
}

// Run calls every hook in the order the host would and stops at the first
// failure.
func Run(w World) (*RunOutput, error) {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"generate_early", w.GenerateEarly},
		{"create_regions", w.CreateRegions},
		{"create_items", w.CreateItems},
		{"set_rules", w.SetRules},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return nil, errors.Wrapf(err, "%s failed", step.name)
		}
	}

	summary, err := w.FillSlotData()
	if err != nil {
		return nil, errors.Wrap(err, "fill_slot_data failed")
	}

	var sb strings.Builder
	if err := w.WriteSpoiler(&sb); err != nil {
		return nil, errors.Wrap(err, "write_spoiler failed")
	}

	return &RunOutput{Summary: summary, Spoiler: sb.String()}, nil
}
