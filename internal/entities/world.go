package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/ow-rando/internal/rules"
)

// Entity type names reported through core.Entity.
const (
	TypeRegion   = "region"
	TypeLocation = "location"
	TypeItem     = "item"
)

// NoID marks event locations and event items, which have no numeric id.
const NoID int64 = 0

// Classification tells the host how an item affects logic and fill.
type Classification string

// Item classifications.
const (
	ClassificationProgression Classification = "progression"
	ClassificationUseful      Classification = "useful"
	ClassificationFiller      Classification = "filler"
	ClassificationTrap        Classification = "trap"
)

// Valid reports whether c is one of the known classifications.
func (c Classification) Valid() bool {
	switch c {
	case ClassificationProgression, ClassificationUseful, ClassificationFiller, ClassificationTrap:
		return true
	}
	return false
}

// Region is a node of the access graph. Locations and exits are indexes
// into the owning graph's flat collections.
type Region struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Locations []int  `json:"locations,omitempty"`
	Exits     []int  `json:"exits,omitempty"`
}

// GetID returns the region name, which is unique per graph.
func (r *Region) GetID() string {
	return r.Name
}

// GetType returns the entity type
func (r *Region) GetType() string {
	return TypeRegion
}

// Location is a placement slot inside exactly one region.
type Location struct {
	Index    int        `json:"index"`
	Name     string     `json:"name"`
	ID       int64      `json:"id"`
	Region   int        `json:"region"`
	Category string     `json:"category,omitempty"`
	Rule     rules.Rule `json:"rule"`

	// EventItem is set for event locations; the host locks it in place.
	EventItem string `json:"event_item,omitempty"`
}

// GetID returns the location name.
func (l *Location) GetID() string {
	return l.Name
}

// GetType returns the entity type
func (l *Location) GetType() string {
	return TypeLocation
}

// IsEvent reports whether the location holds a fixed event item.
func (l *Location) IsEvent() bool {
	return l.EventItem != ""
}

// Link is a directed edge between two regions.
type Link struct {
	Index int        `json:"index"`
	From  int        `json:"from"`
	To    int        `json:"to"`
	Rule  rules.Rule `json:"rule"`
}

// Item is created on demand by name for one player.
type Item struct {
	Name           string         `json:"name"`
	ID             int64          `json:"id"`
	Classification Classification `json:"classification"`
	Player         int            `json:"player"`
}

// GetID returns the item name.
func (i *Item) GetID() string {
	return i.Name
}

// GetType returns the entity type
func (i *Item) GetType() string {
	return TypeItem
}

// IsEvent reports whether the item only exists as an event marker.
func (i *Item) IsEvent() bool {
	return i.ID == NoID
}

// Compile-time checks that world entities implement core.Entity
var (
	_ core.Entity = (*Region)(nil)
	_ core.Entity = (*Location)(nil)
	_ core.Entity = (*Item)(nil)
)
