// Package generation implements the generation orchestrator: it runs the
// world hooks for each player and stores the resulting slot data.
package generation

//go:generate mockgen -destination=mock/mock_service.go -package=generationmock github.com/KirkDiggler/ow-rando/internal/orchestrators/generation Service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/ow-rando/internal/data"
	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/pkg/idgen"
	"github.com/KirkDiggler/ow-rando/internal/pkg/rng"
	"github.com/KirkDiggler/ow-rando/internal/repositories/slot"
	"github.com/KirkDiggler/ow-rando/internal/rules"
	"github.com/KirkDiggler/ow-rando/internal/world"
)

const (
	// DefaultSlotTTL is how long stored slots live when Config.SlotTTL is zero
	DefaultSlotTTL = 24 * time.Hour

	// MaxPlayers bounds a single multiworld request
	MaxPlayers = 256

	// EventSlotGenerated is published after a slot is stored. The event
	// source is the stored *slot.Slot.
	EventSlotGenerated = "generation.slot_generated"
)

// RollerFactory creates the random source for one player of a run.
type RollerFactory func(seed int64, player int) dice.Roller

// Service defines the interface for generation operations
type Service interface {
	GenerateSlot(ctx context.Context, input *GenerateSlotInput) (*GenerateSlotOutput, error)
	GetSlot(ctx context.Context, input *GetSlotInput) (*GetSlotOutput, error)
	ListSlots(ctx context.Context, input *ListSlotsInput) (*ListSlotsOutput, error)

	// GenerateMultiworld generates every player independently. A failing
	// player is reported in its result and never stops the others.
	GenerateMultiworld(ctx context.Context, input *GenerateMultiworldInput) (*GenerateMultiworldOutput, error)
}

// Config holds the dependencies for the generation orchestrator
type Config struct {
	Tables      *data.Tables
	SlotRepo    slot.Repository
	IDGenerator idgen.Generator

	// Optional
	SlotTTL       time.Duration
	Concurrency   int
	RollerFactory RollerFactory
	EventBus      events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Tables == nil {
		vb.RequiredField("Tables")
	}
	if c.SlotRepo == nil {
		vb.RequiredField("SlotRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SlotTTL < 0 {
		vb.Field("SlotTTL", "must not be negative")
	}
	if c.Concurrency < 0 {
		vb.Field("Concurrency", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	tables      *data.Tables
	slotRepo    slot.Repository
	idGen       idgen.Generator
	slotTTL     time.Duration
	concurrency int
	newRoller   RollerFactory
	eventBus    events.EventBus
}

// NewOrchestrator creates a new generation orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		tables:      cfg.Tables,
		slotRepo:    cfg.SlotRepo,
		idGen:       cfg.IDGenerator,
		slotTTL:     cfg.SlotTTL,
		concurrency: cfg.Concurrency,
		newRoller:   cfg.RollerFactory,
		eventBus:    cfg.EventBus,
	}
	if o.slotTTL == 0 {
		o.slotTTL = DefaultSlotTTL
	}
	if o.eventBus == nil {
		o.eventBus = events.NewBus()
	}
	if o.newRoller == nil {
		o.newRoller = func(seed int64, player int) dice.Roller {
			return rng.ForPlayer(seed, player)
		}
	}
	return o, nil
}

// GenerateSlot runs every world hook for one player and stores the summary
func (o *orchestrator) GenerateSlot(ctx context.Context, input *GenerateSlotInput) (*GenerateSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Player < 1 {
		return nil, errors.InvalidArgument("player must be at least 1")
	}

	runID := input.RunID
	if runID == "" {
		runID = o.idGen.Generate()
	}

	out, err := o.generate(ctx, runID, input.Seed, input)
	if err != nil {
		slog.Warn("Slot generation failed",
			"run_id", runID,
			"player", input.Player,
			"seed", input.Seed,
			"error", err)
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) generate(ctx context.Context, runID string, seed int64, input *GenerateSlotInput) (*GenerateSlotOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "generation canceled")
	}

	w, err := world.New(&world.Config{
		Tables:  o.tables,
		Options: input.Options,
		Roller:  o.newRoller(seed, input.Player),
		Player:  input.Player,
	})
	if err != nil {
		return nil, err
	}

	run, err := world.Run(w)
	if err != nil {
		return nil, errors.Wrapf(err, "player %d", input.Player).WithMeta(errors.MetaPlayer, input.Player)
	}

	saved, err := o.slotRepo.Save(ctx, &slot.SaveInput{
		Slot: &slot.Slot{
			RunID:   runID,
			Player:  input.Player,
			Seed:    seed,
			Summary: run.Summary,
			Spoiler: run.Spoiler,
		},
		TTL: o.slotTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save slot")
	}

	out := &GenerateSlotOutput{
		RunID:          runID,
		Slot:           saved.Slot,
		Graph:          w.Graph(),
		ItemPool:       w.ItemPool(),
		CompletionRule: *w.CompletionRule(),
	}
	if input.Check {
		out.Unreachable = unreachableWithAllItems(w)
	}

	if err := o.eventBus.Publish(ctx, events.NewGameEvent(EventSlotGenerated, saved.Slot, nil)); err != nil {
		slog.Warn("Slot generated handler failed",
			"run_id", runID,
			"player", input.Player,
			"error", err)
	}

	slog.Info("Slot generated",
		"run_id", runID,
		"player", input.Player,
		"seed", seed,
		"goal", run.Summary.Goal,
		"coordinates_vanilla", run.Summary.EotuCoordinates.IsVanilla(),
		"db_layout", run.Summary.DBLayout.Encode(),
		"locations", len(out.Graph.Locations),
		"items", len(out.ItemPool))

	return out, nil
}

// unreachableWithAllItems sweeps with the whole item pool in hand and lists
// every region and location that still cannot be reached.
func unreachableWithAllItems(w *world.OuterWilds) []core.Entity {
	inv := rules.NewInventory()
	for _, item := range w.ItemPool() {
		inv.Add(w.Player(), item.Name, 1)
	}

	graph := w.Graph()
	return graph.Unreached(graph.Sweep(inv, w.Player()))
}

// GetSlot fetches a stored slot
func (o *orchestrator) GetSlot(ctx context.Context, input *GetSlotInput) (*GetSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.slotRepo.Get(ctx, &slot.GetInput{RunID: input.RunID, Player: input.Player})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get slot for player %d", input.Player)
	}
	return &GetSlotOutput{Slot: out.Slot}, nil
}

// ListSlots fetches every stored slot of a run
func (o *orchestrator) ListSlots(ctx context.Context, input *ListSlotsInput) (*ListSlotsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.slotRepo.List(ctx, &slot.ListInput{RunID: input.RunID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list slots")
	}
	return &ListSlotsOutput{Slots: out.Slots}, nil
}

// GenerateMultiworld generates all players in parallel, each with its own
// roller derived from the run seed
func (o *orchestrator) GenerateMultiworld(ctx context.Context, input *GenerateMultiworldInput) (*GenerateMultiworldOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.Players) == 0 {
		return nil, errors.InvalidArgument("at least one player is required")
	}
	if len(input.Players) > MaxPlayers {
		return nil, errors.InvalidArgumentf("at most %d players are allowed, got %d", MaxPlayers, len(input.Players))
	}

	runID := input.RunID
	if runID == "" {
		runID = o.idGen.Generate()
	}

	results := make([]*PlayerResult, len(input.Players))

	var g errgroup.Group
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}
	for i, opts := range input.Players {
		player := i + 1
		g.Go(func() error {
			out, err := o.generate(ctx, runID, input.Seed, &GenerateSlotInput{
				RunID:   runID,
				Seed:    input.Seed,
				Player:  player,
				Options: opts,
			})
			results[i] = &PlayerResult{Player: player, Output: out, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	output := &GenerateMultiworldOutput{RunID: runID, Results: results}
	sort.Slice(output.Results, func(a, b int) bool { return output.Results[a].Player < output.Results[b].Player })

	if failed := output.Failed(); len(failed) > 0 {
		for _, r := range failed {
			slog.Warn("Player generation failed",
				"run_id", runID,
				"player", r.Player,
				"error", r.Err)
		}
	}
	slog.Info("Multiworld generated",
		"run_id", runID,
		"players", len(results),
		"failed", len(output.Failed()))

	return output, nil
}
