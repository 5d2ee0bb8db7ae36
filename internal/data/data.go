// Package data loads the static item, location and connection declarations
// embedded in the binary.
//
// The tables are parsed once per process and shared by reference between
// generation calls. Callers must treat every field of Tables as read-only.
package data

import (
	"bytes"
	"embed"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/ow-rando/internal/entities"
	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/rules"
	"github.com/KirkDiggler/ow-rando/internal/topology"
)

//go:embed tables/*.yaml
var embedded embed.FS

// CategoryLogsanity marks ship log locations gated by the logsanity option.
const CategoryLogsanity = "logsanity"

// ItemDecl declares one item.
type ItemDecl struct {
	Name           string                  `yaml:"name"`
	Offset         int64                   `yaml:"offset"`
	Classification entities.Classification `yaml:"classification"`
	Count          int                     `yaml:"count"`

	// ID is BaseID + Offset, filled in by Parse.
	ID int64 `yaml:"-"`
}

// LocationDecl declares one location. Event locations have no offset and
// carry the event item they award.
type LocationDecl struct {
	Name     string             `yaml:"name"`
	Offset   *int64             `yaml:"offset"`
	Region   string             `yaml:"region"`
	Category string             `yaml:"category"`
	Event    string             `yaml:"event"`
	Requires []rules.Expression `yaml:"requires"`

	ID int64 `yaml:"-"`
}

// IsEvent reports whether the location awards a fixed event item.
func (l LocationDecl) IsEvent() bool {
	return l.Event != ""
}

// ConnectionDecl declares a directed region link.
type ConnectionDecl struct {
	From     string             `yaml:"from"`
	To       string             `yaml:"to"`
	Requires []rules.Expression `yaml:"requires"`
}

// BrambleRoomDecl binds a Dark Bramble room code to its region and the
// rule for entering it through any seed.
type BrambleRoomDecl struct {
	Code   string             `yaml:"room"`
	Region string             `yaml:"region"`
	Entry  []rules.Expression `yaml:"entry"`

	Room topology.Room `yaml:"-"`
}

type itemsFile struct {
	BaseID int64               `yaml:"base_id"`
	Items  []ItemDecl          `yaml:"items"`
	Groups map[string][]string `yaml:"groups"`
}

type locationsFile struct {
	BaseID    int64               `yaml:"base_id"`
	Locations []LocationDecl      `yaml:"locations"`
	Groups    map[string][]string `yaml:"groups"`
}

type connectionsFile struct {
	Start       string            `yaml:"start"`
	Regions     []string          `yaml:"regions"`
	Connections []ConnectionDecl  `yaml:"connections"`
	Bramble     []BrambleRoomDecl `yaml:"bramble"`
	Escape      string            `yaml:"escape"`
}

// Tables is the parsed declaration set.
type Tables struct {
	Items          []ItemDecl
	ItemGroups     map[string][]string
	Locations      []LocationDecl
	LocationGroups map[string][]string
	Start          string
	Regions        []string
	Connections    []ConnectionDecl
	Bramble        [topology.RoomCount]BrambleRoomDecl
	Escape         string

	itemIndex     map[string]int
	locationIndex map[string]int
	eventItems    map[string]struct{}
}

// Sources holds raw YAML documents for Parse.
type Sources struct {
	Items       []byte
	Locations   []byte
	Connections []byte
}

var loadEmbedded = sync.OnceValues(func() (*Tables, error) {
	src, err := embeddedSources()
	if err != nil {
		return nil, err
	}
	return Parse(src)
})

// Load returns the embedded tables, parsing them on first use.
func Load() (*Tables, error) {
	return loadEmbedded()
}

func embeddedSources() (Sources, error) {
	var src Sources
	files := []struct {
		name string
		dst  *[]byte
	}{
		{"tables/items.yaml", &src.Items},
		{"tables/locations.yaml", &src.Locations},
		{"tables/connections.yaml", &src.Connections},
	}
	for _, f := range files {
		b, err := embedded.ReadFile(f.name)
		if err != nil {
			return Sources{}, errors.Wrapf(err, "failed to read %s", f.name)
		}
		*f.dst = b
	}
	return src, nil
}

// Parse decodes and checks a declaration set. It rejects duplicate names or
// ids, unknown classifications and an incomplete Dark Bramble room list.
// References between tables are resolved later by the world builder.
func Parse(src Sources) (*Tables, error) {
	var items itemsFile
	if err := decodeStrict(src.Items, &items); err != nil {
		return nil, errors.Wrap(err, "failed to decode items")
	}
	var locations locationsFile
	if err := decodeStrict(src.Locations, &locations); err != nil {
		return nil, errors.Wrap(err, "failed to decode locations")
	}
	var connections connectionsFile
	if err := decodeStrict(src.Connections, &connections); err != nil {
		return nil, errors.Wrap(err, "failed to decode connections")
	}

	t := &Tables{
		Items:          items.Items,
		ItemGroups:     items.Groups,
		Locations:      locations.Locations,
		LocationGroups: locations.Groups,
		Start:          connections.Start,
		Regions:        connections.Regions,
		Connections:    connections.Connections,
		Escape:         connections.Escape,
		itemIndex:      make(map[string]int, len(items.Items)),
		locationIndex:  make(map[string]int, len(locations.Locations)),
		eventItems:     make(map[string]struct{}),
	}

	if err := t.indexItems(items.BaseID); err != nil {
		return nil, err
	}
	if err := t.indexLocations(locations.BaseID); err != nil {
		return nil, err
	}
	if err := t.indexBramble(connections.Bramble); err != nil {
		return nil, err
	}
	if err := t.checkGroups(); err != nil {
		return nil, err
	}
	if t.Start == "" {
		return nil, errors.Configuration("start region is required")
	}
	if t.Escape == "" {
		return nil, errors.Configuration("escape region is required")
	}

	return t, nil
}

func decodeStrict(b []byte, out interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return errors.Configuration("%v", err)
	}
	return nil
}

func (t *Tables) indexItems(base int64) error {
	ids := make(map[int64]string, len(t.Items))
	for i := range t.Items {
		item := &t.Items[i]
		if item.Name == "" {
			return errors.Configuration("item %d has no name", i)
		}
		if _, dup := t.itemIndex[item.Name]; dup {
			return errors.Configuration("duplicate item %q", item.Name)
		}
		if !item.Classification.Valid() {
			return errors.Configuration("item %q has unknown classification %q", item.Name, item.Classification)
		}
		if item.Count < 0 {
			return errors.Configuration("item %q has negative count", item.Name)
		}
		item.ID = base + item.Offset
		if other, dup := ids[item.ID]; dup {
			return errors.Configuration("items %q and %q share id %d", other, item.Name, item.ID)
		}
		ids[item.ID] = item.Name
		t.itemIndex[item.Name] = i
	}
	return nil
}

func (t *Tables) indexLocations(base int64) error {
	ids := make(map[int64]string, len(t.Locations))
	for i := range t.Locations {
		loc := &t.Locations[i]
		if loc.Name == "" {
			return errors.Configuration("location %d has no name", i)
		}
		if _, dup := t.locationIndex[loc.Name]; dup {
			return errors.Configuration("duplicate location %q", loc.Name)
		}
		t.locationIndex[loc.Name] = i

		if loc.IsEvent() {
			if loc.Offset != nil {
				return errors.Configuration("event location %q must not have an id", loc.Name)
			}
			if _, clash := t.itemIndex[loc.Event]; clash {
				return errors.Configuration("event item %q collides with a declared item", loc.Event)
			}
			t.eventItems[loc.Event] = struct{}{}
			continue
		}

		if loc.Offset == nil {
			return errors.Configuration("location %q has no offset", loc.Name)
		}
		loc.ID = base + *loc.Offset
		if other, dup := ids[loc.ID]; dup {
			return errors.Configuration("locations %q and %q share id %d", other, loc.Name, loc.ID)
		}
		ids[loc.ID] = loc.Name
	}
	return nil
}

func (t *Tables) indexBramble(decls []BrambleRoomDecl) error {
	seen := make(map[topology.Room]bool, len(decls))
	for _, decl := range decls {
		if len(decl.Code) != 1 {
			return errors.Configuration("bramble room code %q must be one letter", decl.Code)
		}
		room, err := topology.RoomFromCode(decl.Code[0])
		if err != nil {
			return err
		}
		if seen[room] {
			return errors.Configuration("bramble room %s declared twice", room)
		}
		seen[room] = true
		decl.Room = room
		t.Bramble[room] = decl
	}
	if len(seen) != topology.RoomCount {
		return errors.Configuration("expected %d bramble rooms, got %d", topology.RoomCount, len(seen))
	}
	return nil
}

func (t *Tables) checkGroups() error {
	for group, names := range t.ItemGroups {
		for _, name := range names {
			if _, ok := t.itemIndex[name]; !ok {
				return errors.Wrapf(errors.DanglingReference("item", name), "item group %q", group)
			}
		}
	}
	for group, names := range t.LocationGroups {
		for _, name := range names {
			if _, ok := t.locationIndex[name]; !ok {
				return errors.Wrapf(errors.DanglingReference("location", name), "location group %q", group)
			}
		}
	}
	return nil
}

// Item looks up a declared item by name.
func (t *Tables) Item(name string) (ItemDecl, bool) {
	i, ok := t.itemIndex[name]
	if !ok {
		return ItemDecl{}, false
	}
	return t.Items[i], true
}

// Location looks up a declared location by name.
func (t *Tables) Location(name string) (LocationDecl, bool) {
	i, ok := t.locationIndex[name]
	if !ok {
		return LocationDecl{}, false
	}
	return t.Locations[i], true
}

// IsEventItem reports whether name is awarded by an event location.
func (t *Tables) IsEventItem(name string) bool {
	_, ok := t.eventItems[name]
	return ok
}

// IsKnownItem reports whether name is a declared item or an event item.
func (t *Tables) IsKnownItem(name string) bool {
	if _, ok := t.itemIndex[name]; ok {
		return true
	}
	return t.IsEventItem(name)
}

// ItemNameToID returns a fresh name to id map for every non-event item.
func (t *Tables) ItemNameToID() map[string]int64 {
	out := make(map[string]int64, len(t.Items))
	for _, item := range t.Items {
		out[item.Name] = item.ID
	}
	return out
}

// LocationNameToID returns a fresh name to id map for every non-event
// location, logsanity ones included.
func (t *Tables) LocationNameToID() map[string]int64 {
	out := make(map[string]int64, len(t.Locations))
	for _, loc := range t.Locations {
		if !loc.IsEvent() {
			out[loc.Name] = loc.ID
		}
	}
	return out
}
