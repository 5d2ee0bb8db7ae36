package generation

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/ow-rando/internal/entities"
	"github.com/KirkDiggler/ow-rando/internal/options"
	"github.com/KirkDiggler/ow-rando/internal/repositories/slot"
	"github.com/KirkDiggler/ow-rando/internal/rules"
	"github.com/KirkDiggler/ow-rando/internal/world"
)

// GenerateSlotInput defines the request for generating one player's slot
type GenerateSlotInput struct {
	// RunID groups slots of one multiworld; generated when empty
	RunID   string
	Seed    int64
	Player  int
	Options options.Options

	// Check runs an all-items sweep and reports unreachable locations
	Check bool
}

// GenerateSlotOutput defines the response for generating a slot
type GenerateSlotOutput struct {
	RunID          string
	Slot           *slot.Slot
	Graph          *world.Graph
	ItemPool       []*entities.Item
	CompletionRule rules.Rule

	// Unreachable lists the regions and locations the sweep could not
	// reach; only set when Check was requested
	Unreachable []core.Entity
}

// GetSlotInput defines the request for fetching a stored slot
type GetSlotInput struct {
	RunID  string
	Player int
}

// GetSlotOutput defines the response for fetching a stored slot
type GetSlotOutput struct {
	Slot *slot.Slot
}

// ListSlotsInput defines the request for fetching every slot of a run
type ListSlotsInput struct {
	RunID string
}

// ListSlotsOutput defines the response for fetching every slot of a run
type ListSlotsOutput struct {
	Slots []*slot.Slot
}

// GenerateMultiworldInput defines the request for generating many players
type GenerateMultiworldInput struct {
	RunID string
	Seed  int64

	// Players[i] holds the options for player i+1
	Players []options.Options
}

// PlayerResult is one player's outcome in a multiworld run
type PlayerResult struct {
	Player int
	Output *GenerateSlotOutput
	Err    error
}

// GenerateMultiworldOutput defines the response for a multiworld run
type GenerateMultiworldOutput struct {
	RunID   string
	Results []*PlayerResult
}

// Failed returns the results that carry an error.
func (o *GenerateMultiworldOutput) Failed() []*PlayerResult {
	var failed []*PlayerResult
	for _, r := range o.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
