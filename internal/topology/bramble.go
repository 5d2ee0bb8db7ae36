package topology

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/pkg/rng"
)

const (
	// layoutSeparator joins room segments in the encoded layout.
	layoutSeparator = "|"
	// exitSeparator splits a segment into its room and its exits.
	exitSeparator = ":"
)

// skeleton is the fixed connection structure of Dark Bramble, indexed by
// slot. With room i in slot i it is the canonical layout. Every slot except
// the ExitOnly slot reaches every other slot; the ExitOnly slot is the only
// sink.
var skeleton = [RoomCount][]int{
	int(Hub):        {int(EscapePod), int(AnglerNest), int(Cluster)},
	int(EscapePod):  {int(Hub), int(Pioneer)},
	int(AnglerNest): {int(Hub), int(Vessel)},
	int(Pioneer):    {int(EscapePod), int(ExitOnly)},
	int(ExitOnly):   {},
	int(Vessel):     {int(AnglerNest)},
	int(Cluster):    {int(Hub), int(SmallNest)},
	int(SmallNest):  {int(Cluster), int(Vessel)},
}

// Edge is a directed seed connection between two rooms.
type Edge struct {
	From Room
	To   Room
}

// RoomGraph is a directed graph over the eight room types.
type RoomGraph struct {
	randomized bool
	exits      [RoomCount][]Room
}

// CanonicalRoomGraph returns the unmodified layout.
func CanonicalRoomGraph() RoomGraph {
	g, _ := layoutFromAssignment(identityAssignment())
	return g
}

// VanillaRoomGraph returns the unchanged sentinel. Its edges are the
// canonical layout so the access graph can always read edges from it.
func VanillaRoomGraph() RoomGraph {
	return CanonicalRoomGraph()
}

// IsVanilla reports whether the graph is the unchanged sentinel.
func (g RoomGraph) IsVanilla() bool {
	return !g.randomized
}

// Exits returns the rooms reachable in one step from r, sorted.
func (g RoomGraph) Exits(r Room) []Room {
	if !r.Valid() {
		return nil
	}
	out := make([]Room, len(g.exits[r]))
	copy(out, g.exits[r])
	return out
}

// Edges lists all edges ordered by source then destination.
func (g RoomGraph) Edges() []Edge {
	var edges []Edge
	for _, from := range AllRooms() {
		for _, to := range g.exits[from] {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// HasEdge reports whether from has a seed leading to to.
func (g RoomGraph) HasEdge(from, to Room) bool {
	if !from.Valid() {
		return false
	}
	for _, r := range g.exits[from] {
		if r == to {
			return true
		}
	}
	return false
}

// SameLayout reports whether both graphs have the same edge set, ignoring
// the sentinel flag.
func (g RoomGraph) SameLayout(other RoomGraph) bool {
	for r := range g.exits {
		if !slices.Equal(g.exits[r], other.exits[r]) {
			return false
		}
	}
	return true
}

// Encode writes the layout as one segment per room in canonical room order,
// e.g. "H:EAC|E:HP|...|X:|...". The vanilla sentinel encodes as "vanilla".
func (g RoomGraph) Encode() string {
	if g.IsVanilla() {
		return Vanilla
	}
	segments := make([]string, 0, RoomCount)
	for _, from := range AllRooms() {
		var sb strings.Builder
		sb.WriteByte(from.Code())
		sb.WriteString(exitSeparator)
		for _, to := range g.exits[from] {
			sb.WriteByte(to.Code())
		}
		segments = append(segments, sb.String())
	}
	return strings.Join(segments, layoutSeparator)
}

// DecodeRoomGraph parses the output of Encode and validates it.
func DecodeRoomGraph(encoded string) (RoomGraph, error) {
	if encoded == Vanilla {
		return VanillaRoomGraph(), nil
	}

	segments := strings.Split(encoded, layoutSeparator)
	if len(segments) != RoomCount {
		return RoomGraph{}, errors.InvalidArgumentf("layout has %d rooms, expected %d", len(segments), RoomCount)
	}

	g := RoomGraph{randomized: true}
	var seen [RoomCount]bool
	for _, segment := range segments {
		room, exits, ok := strings.Cut(segment, exitSeparator)
		if !ok || len(room) != 1 {
			return RoomGraph{}, errors.InvalidArgumentf("malformed layout segment %q", segment)
		}
		from, err := RoomFromCode(room[0])
		if err != nil {
			return RoomGraph{}, err
		}
		if seen[from] {
			return RoomGraph{}, errors.InvalidArgumentf("room %s appears twice in layout", from)
		}
		seen[from] = true

		for i := 0; i < len(exits); i++ {
			to, err := RoomFromCode(exits[i])
			if err != nil {
				return RoomGraph{}, err
			}
			g.exits[from] = append(g.exits[from], to)
		}
		sortRooms(g.exits[from])
	}

	if err := ValidateRoomGraph(g); err != nil {
		return RoomGraph{}, err
	}
	return g, nil
}

// MarshalJSON writes the encoded layout string.
func (g RoomGraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Encode())
}

// UnmarshalJSON reads the encoded layout string.
func (g *RoomGraph) UnmarshalJSON(data []byte) error {
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return errors.Wrap(err, "failed to decode dark bramble layout")
	}
	decoded, err := DecodeRoomGraph(encoded)
	if err != nil {
		return err
	}
	*g = decoded
	return nil
}

// GenerateRoomGraph shuffles which room occupies each skeleton slot until
// the result passes ValidateRoomGraph.
func GenerateRoomGraph(roller dice.Roller, randomize bool) (RoomGraph, error) {
	if !randomize {
		return VanillaRoomGraph(), nil
	}
	if roller == nil {
		return RoomGraph{}, errors.InvalidArgument("roller is required")
	}

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		assignment := identityAssignment()
		if err := rng.Shuffle(roller, assignment); err != nil {
			return RoomGraph{}, errors.Wrap(err, "failed to shuffle dark bramble rooms")
		}

		candidate, err := layoutFromAssignment(assignment)
		if err != nil {
			return RoomGraph{}, err
		}
		candidate.randomized = true

		if ValidateRoomGraph(candidate) == nil {
			return candidate, nil
		}
	}

	return RoomGraph{}, errors.GenerationExhausted(RoomGraphGenerator, MaxAttempts)
}

// ValidateRoomGraph checks the structural invariants of a layout: Hub
// reaches every room, the ExitOnly room has no exits, nothing links to
// itself or repeats an exit, and a randomized layout differs from the
// canonical one.
func ValidateRoomGraph(g RoomGraph) error {
	for _, e := range g.Edges() {
		if e.From == e.To {
			return errors.InvalidArgumentf("room %s links to itself", e.From)
		}
	}

	for _, from := range AllRooms() {
		exits := slices.Clone(g.exits[from])
		sortRooms(exits)
		for i := 1; i < len(exits); i++ {
			if exits[i] == exits[i-1] {
				return errors.InvalidArgumentf("room %s links to %s more than once", from, exits[i])
			}
		}
	}

	if len(g.exits[ExitOnly]) != 0 {
		return errors.InvalidArgumentf("%s room has %d exits, expected none", ExitOnly, len(g.exits[ExitOnly]))
	}

	reached := g.reachableFrom(Hub)
	if reached.Size() != RoomCount {
		var missing []string
		for _, r := range AllRooms() {
			if !reached.Has(r) {
				missing = append(missing, r.String())
			}
		}
		return errors.InvalidArgumentf("rooms unreachable from %s: %s", Hub, strings.Join(missing, ", "))
	}

	if !g.IsVanilla() && g.SameLayout(CanonicalRoomGraph()) {
		return errors.InvalidArgument("randomized layout is identical to the canonical layout")
	}
	return nil
}

// reachableFrom collects every room reachable from start.
func (g RoomGraph) reachableFrom(start Room) mapset.Set[Room] {
	visited := mapset.New[Room]()
	queue := []Room{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited.Has(current) {
			continue
		}
		visited.Put(current)

		for _, next := range g.exits[current] {
			if !visited.Has(next) {
				queue = append(queue, next)
			}
		}
	}

	return visited
}

func identityAssignment() []Room {
	return AllRooms()
}

// layoutFromAssignment places assignment[slot] into each skeleton slot.
func layoutFromAssignment(assignment []Room) (RoomGraph, error) {
	if len(assignment) != RoomCount {
		return RoomGraph{}, errors.Internalf("assignment covers %d slots, expected %d", len(assignment), RoomCount)
	}

	var g RoomGraph
	for slot, targets := range skeleton {
		from := assignment[slot]
		for _, target := range targets {
			g.exits[from] = append(g.exits[from], assignment[target])
		}
		sortRooms(g.exits[from])
	}
	return g, nil
}

func sortRooms(rooms []Room) {
	slices.Sort(rooms)
}
