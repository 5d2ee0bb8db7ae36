package rules

// Inventory is a simple State backed by nested maps. The host owns the
// real player state; Inventory serves tests and the CLI reachability sweep.
type Inventory struct {
	counts map[int]map[string]int
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{counts: make(map[int]map[string]int)}
}

// Add gives player n more copies of item.
func (inv *Inventory) Add(player int, item string, n int) *Inventory {
	if inv.counts[player] == nil {
		inv.counts[player] = make(map[string]int)
	}
	inv.counts[player][item] += n
	return inv
}

// Remove takes every copy of item away from player.
func (inv *Inventory) Remove(player int, item string) *Inventory {
	delete(inv.counts[player], item)
	return inv
}

// Count implements State.
func (inv *Inventory) Count(item string, player int) int {
	return inv.counts[player][item]
}
