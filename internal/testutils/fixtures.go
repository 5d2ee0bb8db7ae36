package testutils

import (
	"time"

	"github.com/KirkDiggler/ow-rando/internal/options"
	"github.com/KirkDiggler/ow-rando/internal/repositories/slot"
	"github.com/KirkDiggler/ow-rando/internal/slotdata"
	"github.com/KirkDiggler/ow-rando/internal/topology"
)

const (
	// TestRunID is the default run id for slot fixtures
	TestRunID = "run_test-001"

	// TestSeed is the default seed for slot fixtures
	TestSeed int64 = 424242
)

// FixedTime is a stable instant for clocks in tests.
var FixedTime = time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC)

// CreateTestSummary returns a randomized-coordinates summary.
func CreateTestSummary() slotdata.Summary {
	return slotdata.Build(
		options.Options{Goal: options.GoalSongOfSix, RandomizeCoordinates: true, DeathLink: true},
		topology.Coordinates{Randomized: true, Points: [topology.CoordinateLength]int{5, 0, 1}},
		topology.VanillaRoomGraph(),
	)
}

// CreateTestSlot creates a slot with sensible defaults
func CreateTestSlot(runID string, player int) *slot.Slot {
	return &slot.Slot{
		RunID:   runID,
		Player:  player,
		Seed:    TestSeed + int64(player),
		Summary: CreateTestSummary(),
		Spoiler: "\nRandomized Eye of the Universe Coordinates\n",
	}
}
