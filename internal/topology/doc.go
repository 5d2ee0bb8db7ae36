// Package topology generates the two randomized puzzle layouts of a seed:
// the Eye of the Universe coordinates and the Dark Bramble room graph.
//
// Both generators take a dice.Roller and a randomize flag. When the flag is
// off they return the vanilla value without drawing from the roller. When it
// is on they draw a candidate, validate it, and resample up to MaxAttempts
// times before giving up with a generation-bound error.
package topology

// MaxAttempts bounds every resample loop in this package.
const MaxAttempts = 1000

// Vanilla is the sentinel written in place of an unrandomized layout.
const Vanilla = "vanilla"

// Generator names reported in generation-bound errors.
const (
	CoordinatesGenerator = "eotu coordinates"
	RoomGraphGenerator   = "dark bramble layout"
)
