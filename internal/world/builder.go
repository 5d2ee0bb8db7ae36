package world

import (
	"github.com/KirkDiggler/ow-rando/internal/data"
	"github.com/KirkDiggler/ow-rando/internal/entities"
	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/rules"
	"github.com/KirkDiggler/ow-rando/internal/topology"
)

// BuildInput configures one graph build.
type BuildInput struct {
	Tables    *data.Tables
	Layout    topology.RoomGraph
	Logsanity bool
}

// BuildGraph instantiates regions and locations from the declarations,
// then adds declared links and the Dark Bramble links derived from the
// layout. Every name is resolved here; any dangling reference or malformed
// rule fails the build.
func BuildGraph(input *BuildInput) (*Graph, error) {
	if input == nil || input.Tables == nil {
		return nil, errors.InvalidArgument("tables are required")
	}
	b := &builder{
		tables: input.Tables,
		graph: &Graph{
			regionIndex:   make(map[string]int, len(input.Tables.Regions)),
			locationIndex: make(map[string]int, len(input.Tables.Locations)),
		},
	}

	if err := b.addRegions(); err != nil {
		return nil, err
	}
	if err := b.addLocations(input.Logsanity); err != nil {
		return nil, err
	}
	if err := b.addConnections(); err != nil {
		return nil, err
	}

	layout := input.Layout
	if layout.IsVanilla() {
		layout = topology.CanonicalRoomGraph()
	}
	if err := b.addBramble(layout); err != nil {
		return nil, err
	}

	return b.graph, nil
}

type builder struct {
	tables *data.Tables
	graph  *Graph
}

func (b *builder) addRegions() error {
	for _, name := range b.tables.Regions {
		if name == "" {
			return errors.Configuration("region name must not be empty")
		}
		if _, dup := b.graph.regionIndex[name]; dup {
			return errors.Configuration("duplicate region %q", name).WithMeta(errors.MetaName, name)
		}
		idx := len(b.graph.Regions)
		b.graph.Regions = append(b.graph.Regions, entities.Region{Index: idx, Name: name})
		b.graph.regionIndex[name] = idx
	}

	start, err := b.region(b.tables.Start)
	if err != nil {
		return errors.Wrap(err, "start region")
	}
	b.graph.Start = start
	return nil
}

func (b *builder) addLocations(logsanity bool) error {
	for _, decl := range b.tables.Locations {
		if decl.Category == data.CategoryLogsanity && !logsanity {
			continue
		}

		region, err := b.region(decl.Region)
		if err != nil {
			return errors.Wrapf(err, "location %q", decl.Name)
		}
		rule, err := rules.Compile(decl.Requires, b.tables.IsKnownItem)
		if err != nil {
			return errors.Wrapf(err, "location %q", decl.Name)
		}

		idx := len(b.graph.Locations)
		b.graph.Locations = append(b.graph.Locations, entities.Location{
			Index:     idx,
			Name:      decl.Name,
			ID:        decl.ID,
			Region:    region,
			Category:  decl.Category,
			Rule:      rule,
			EventItem: decl.Event,
		})
		b.graph.locationIndex[decl.Name] = idx
		b.graph.Regions[region].Locations = append(b.graph.Regions[region].Locations, idx)
	}
	return nil
}

func (b *builder) addConnections() error {
	for _, conn := range b.tables.Connections {
		rule, err := rules.Compile(conn.Requires, b.tables.IsKnownItem)
		if err != nil {
			return errors.Wrapf(err, "connection %q -> %q", conn.From, conn.To)
		}
		if err := b.link(conn.From, conn.To, rule); err != nil {
			return err
		}
	}
	return nil
}

// addBramble links room regions along the layout's edges. Entering a room
// through any seed uses that room's entry rule. The exit-only room gets the
// escape link out of Dark Bramble.
func (b *builder) addBramble(layout topology.RoomGraph) error {
	var entry [topology.RoomCount]rules.Rule
	for _, room := range topology.AllRooms() {
		decl := b.tables.Bramble[room]
		rule, err := rules.Compile(decl.Entry, b.tables.IsKnownItem)
		if err != nil {
			return errors.Wrapf(err, "dark bramble room %s", room)
		}
		entry[room] = rule
	}

	for _, edge := range layout.Edges() {
		from := b.tables.Bramble[edge.From].Region
		to := b.tables.Bramble[edge.To].Region
		if err := b.link(from, to, entry[edge.To]); err != nil {
			return errors.Wrapf(err, "dark bramble seed %s -> %s", edge.From, edge.To)
		}
	}

	exit := b.tables.Bramble[topology.ExitOnly].Region
	if err := b.link(exit, b.tables.Escape, rules.Always()); err != nil {
		return errors.Wrap(err, "dark bramble escape")
	}
	return nil
}

func (b *builder) link(from, to string, rule rules.Rule) error {
	src, err := b.region(from)
	if err != nil {
		return err
	}
	dst, err := b.region(to)
	if err != nil {
		return err
	}
	if rule.IsNever() {
		return nil
	}

	idx := len(b.graph.Links)
	b.graph.Links = append(b.graph.Links, entities.Link{Index: idx, From: src, To: dst, Rule: rule})
	b.graph.Regions[src].Exits = append(b.graph.Regions[src].Exits, idx)
	return nil
}

func (b *builder) region(name string) (int, error) {
	idx, ok := b.graph.regionIndex[name]
	if !ok {
		return 0, errors.DanglingReference("region", name)
	}
	return idx, nil
}
