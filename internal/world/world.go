// Package world builds one player's Outer Wilds world: the generated
// topology, the access graph, the item pool and the completion rule.
package world

import (
	"io"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/ow-rando/internal/data"
	"github.com/KirkDiggler/ow-rando/internal/entities"
	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/options"
	"github.com/KirkDiggler/ow-rando/internal/rules"
	"github.com/KirkDiggler/ow-rando/internal/slotdata"
	"github.com/KirkDiggler/ow-rando/internal/spoiler"
	"github.com/KirkDiggler/ow-rando/internal/topology"
)

// FillerItem is handed out whenever the pool runs short.
const FillerItem = "Marshmallow"

// World is the set of hooks the host calls, in this order, to generate one
// player's world.
type World interface {
	GenerateEarly() error
	CreateRegions() error
	CreateItems() error
	SetRules() error
	FillSlotData() (slotdata.Summary, error)
	WriteSpoiler(w io.Writer) error

	// CreateItem builds an item for this player by name.
	CreateItem(name string) (*entities.Item, error)

	// FillerItemName names the item used when the host needs one more.
	FillerItemName() string
}

// Config holds the inputs for one player's world.
type Config struct {
	Tables  *data.Tables
	Options options.Options
	Roller  dice.Roller
	Player  int
}

// Validate ensures all required inputs are present
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Tables == nil {
		vb.RequiredField("tables")
	}
	if c.Roller == nil {
		vb.RequiredField("roller")
	}
	if c.Player < 1 {
		vb.Field("player", "must be at least 1")
	}
	return vb.Build()
}

// OuterWilds implements World.
type OuterWilds struct {
	tables *data.Tables
	opts   options.Options
	roller dice.Roller
	player int

	coordinates topology.Coordinates
	layout      topology.RoomGraph
	early       bool

	graph      *Graph
	pool       []*entities.Item
	completion *rules.Rule
}

var _ World = (*OuterWilds)(nil)

// New creates a world for one player.
func New(cfg *Config) (*OuterWilds, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &OuterWilds{
		tables: cfg.Tables,
		opts:   cfg.Options,
		roller: cfg.Roller,
		player: cfg.Player,
	}, nil
}

// GenerateEarly draws the randomized topology.
func (w *OuterWilds) GenerateEarly() error {
	if err := w.opts.Validate(); err != nil {
		return err
	}

	coords, err := topology.GenerateCoordinates(w.roller, w.opts.RandomizeCoordinates)
	if err != nil {
		return err
	}
	layout, err := topology.GenerateRoomGraph(w.roller, w.opts.RandomizeDarkBrambleLayout)
	if err != nil {
		return err
	}

	w.coordinates = coords
	w.layout = layout
	w.early = true
	return nil
}

// CreateRegions builds the access graph from the declarations and layout.
func (w *OuterWilds) CreateRegions() error {
	if !w.early {
		return errors.FailedPrecondition("GenerateEarly must run before CreateRegions")
	}

	graph, err := BuildGraph(&BuildInput{
		Tables:    w.tables,
		Layout:    w.layout,
		Logsanity: w.opts.Logsanity,
	})
	if err != nil {
		return err
	}
	w.graph = graph
	return nil
}

// CreateItems fills the item pool with every declared item, then pads it
// with filler until there is one item per placeable location.
func (w *OuterWilds) CreateItems() error {
	if w.graph == nil {
		return errors.FailedPrecondition("CreateRegions must run before CreateItems")
	}

	var pool []*entities.Item
	for _, decl := range w.tables.Items {
		for i := 0; i < decl.Count; i++ {
			item, err := w.CreateItem(decl.Name)
			if err != nil {
				return err
			}
			pool = append(pool, item)
		}
	}

	slots := w.graph.PlaceableLocations()
	if len(pool) > slots {
		return errors.FailedPreconditionf("item pool has %d items but only %d locations", len(pool), slots)
	}
	for len(pool) < slots {
		item, err := w.CreateItem(w.FillerItemName())
		if err != nil {
			return err
		}
		pool = append(pool, item)
	}

	w.pool = pool
	return nil
}

// SetRules resolves the completion rule. Location and link rules are set
// while building the graph.
func (w *OuterWilds) SetRules() error {
	rule, err := CompletionRule(w.opts.Goal)
	if err != nil {
		return err
	}
	w.completion = &rule
	return nil
}

// FillSlotData packages the client payload.
func (w *OuterWilds) FillSlotData() (slotdata.Summary, error) {
	if !w.early {
		return slotdata.Summary{}, errors.FailedPrecondition("GenerateEarly must run before FillSlotData")
	}
	return slotdata.Build(w.opts, w.coordinates, w.layout), nil
}

// WriteSpoiler writes the randomized topology to the spoiler log.
func (w *OuterWilds) WriteSpoiler(out io.Writer) error {
	if !w.early {
		return errors.FailedPrecondition("GenerateEarly must run before WriteSpoiler")
	}
	return spoiler.Write(out, w.coordinates, w.layout)
}

// CreateItem builds an item by name. Event items get no id.
func (w *OuterWilds) CreateItem(name string) (*entities.Item, error) {
	if decl, ok := w.tables.Item(name); ok {
		return &entities.Item{
			Name:           decl.Name,
			ID:             decl.ID,
			Classification: decl.Classification,
			Player:         w.player,
		}, nil
	}
	if w.tables.IsEventItem(name) {
		return &entities.Item{
			Name:           name,
			ID:             entities.NoID,
			Classification: entities.ClassificationProgression,
			Player:         w.player,
		}, nil
	}
	return nil, errors.DanglingReference("item", name)
}

// FillerItemName returns the filler item.
func (w *OuterWilds) FillerItemName() string {
	return FillerItem
}

// Player returns the player slot this world belongs to.
func (w *OuterWilds) Player() int {
	return w.player
}

// Coordinates returns the drawn arrangement, valid after GenerateEarly.
func (w *OuterWilds) Coordinates() topology.Coordinates {
	return w.coordinates
}

// Layout returns the drawn Dark Bramble layout, valid after GenerateEarly.
func (w *OuterWilds) Layout() topology.RoomGraph {
	return w.layout
}

// Graph returns the access graph, nil before CreateRegions.
func (w *OuterWilds) Graph() *Graph {
	return w.graph
}

// ItemPool returns the item pool, nil before CreateItems.
func (w *OuterWilds) ItemPool() []*entities.Item {
	return w.pool
}

// CompletionRule returns the goal rule, nil before SetRules.
func (w *OuterWilds) CompletionRule() *rules.Rule {
	return w.completion
}
