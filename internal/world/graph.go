package world

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/ow-rando/internal/entities"
	"github.com/KirkDiggler/ow-rando/internal/rules"
)

// Graph is the access graph for one player. Regions, locations and links
// live in flat slices and refer to each other by index. A built graph is
// read-only and safe to share between goroutines.
type Graph struct {
	Start     int                 `json:"start"`
	Regions   []entities.Region   `json:"regions"`
	Locations []entities.Location `json:"locations"`
	Links     []entities.Link     `json:"links"`

	regionIndex   map[string]int
	locationIndex map[string]int
}

// Region looks up a region by name.
func (g *Graph) Region(name string) (*entities.Region, bool) {
	i, ok := g.regionIndex[name]
	if !ok {
		return nil, false
	}
	return &g.Regions[i], true
}

// Location looks up a location by name.
func (g *Graph) Location(name string) (*entities.Location, bool) {
	i, ok := g.locationIndex[name]
	if !ok {
		return nil, false
	}
	return &g.Locations[i], true
}

// LinkBetween returns the link from one named region to another.
func (g *Graph) LinkBetween(from, to string) (*entities.Link, bool) {
	src, ok := g.regionIndex[from]
	if !ok {
		return nil, false
	}
	dst, ok := g.regionIndex[to]
	if !ok {
		return nil, false
	}
	for _, li := range g.Regions[src].Exits {
		if g.Links[li].To == dst {
			return &g.Links[li], true
		}
	}
	return nil, false
}

// PlaceableLocations counts the locations that take an item from the pool.
func (g *Graph) PlaceableLocations() int {
	n := 0
	for i := range g.Locations {
		if !g.Locations[i].IsEvent() {
			n++
		}
	}
	return n
}

// Reachability is the result of a sweep.
type Reachability struct {
	Regions   mapset.Set[int]
	Locations mapset.Set[int]
}

// Reachable walks the graph from the start region with the given state.
// It only reads state.
func (g *Graph) Reachable(state rules.State, player int) Reachability {
	regions := mapset.New[int]()
	queue := []int{g.Start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if regions.Has(current) {
			continue
		}
		regions.Put(current)

		for _, li := range g.Regions[current].Exits {
			link := g.Links[li]
			if !regions.Has(link.To) && link.Rule.Evaluate(state, player) {
				queue = append(queue, link.To)
			}
		}
	}

	locations := mapset.New[int]()
	regions.Each(func(ri int) {
		for _, loc := range g.Regions[ri].Locations {
			if g.Locations[loc].Rule.Evaluate(state, player) {
				locations.Put(loc)
			}
		}
	})

	return Reachability{Regions: regions, Locations: locations}
}

// Sweep is Reachable with event items collected as their locations become
// reachable, repeated until nothing new is found.
func (g *Graph) Sweep(state rules.State, player int) Reachability {
	collected := &eventState{base: state, player: player, events: make(map[string]int)}
	seen := mapset.New[int]()

	for {
		reach := g.Reachable(collected, player)
		progressed := false
		reach.Locations.Each(func(li int) {
			loc := g.Locations[li]
			if !loc.IsEvent() || seen.Has(li) {
				return
			}
			seen.Put(li)
			collected.events[loc.EventItem]++
			progressed = true
		})
		if !progressed {
			return reach
		}
	}
}

// Unreached lists the regions and then the locations a sweep did not reach,
// in graph order.
func (g *Graph) Unreached(reach Reachability) []core.Entity {
	var missing []core.Entity
	for i := range g.Regions {
		if !reach.Regions.Has(i) {
			missing = append(missing, &g.Regions[i])
		}
	}
	for i := range g.Locations {
		if !reach.Locations.Has(i) {
			missing = append(missing, &g.Locations[i])
		}
	}
	return missing
}

// eventState layers collected event items over a host state without
// touching it.
type eventState struct {
	base   rules.State
	player int
	events map[string]int
}

func (s *eventState) Count(item string, player int) int {
	n := s.base.Count(item, player)
	if player == s.player {
		n += s.events[item]
	}
	return n
}
