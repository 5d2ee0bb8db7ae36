// Package rules holds the access predicate grammar: a small tree of
// And / Or / Has / HasCount nodes evaluated against a player's items.
//
// Rules are plain values. They never capture state, so a built rule can be
// evaluated any number of times, from any number of goroutines.
package rules

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags a Rule node.
type Kind string

// Rule node kinds.
const (
	KindTrue     Kind = "true"
	KindFalse    Kind = "false"
	KindHas      Kind = "has"
	KindHasCount Kind = "has_count"
	KindAnd      Kind = "and"
	KindOr       Kind = "or"
)

// State is the host-owned view of what a player currently holds.
type State interface {
	// Count returns how many copies of item player holds.
	Count(item string, player int) int
}

// Rule is one node of a predicate tree.
type Rule struct {
	Kind     Kind   `json:"kind"`
	Item     string `json:"item,omitempty"`
	Count    int    `json:"count,omitempty"`
	Children []Rule `json:"children,omitempty"`
}

// Always is satisfied by every state.
func Always() Rule {
	return Rule{Kind: KindTrue}
}

// Never is satisfied by no state.
func Never() Rule {
	return Rule{Kind: KindFalse}
}

// Has requires one copy of item.
func Has(item string) Rule {
	return Rule{Kind: KindHas, Item: item}
}

// HasCount requires at least n copies of item.
func HasCount(item string, n int) Rule {
	if n <= 1 {
		return Has(item)
	}
	return Rule{Kind: KindHasCount, Item: item, Count: n}
}

// And requires every child. Nested Ands are flattened and Always children
// dropped; a Never child makes the whole rule Never.
func And(children ...Rule) Rule {
	flat := make([]Rule, 0, len(children))
	for _, c := range children {
		switch c.Kind {
		case KindTrue:
			continue
		case KindFalse:
			return Never()
		case KindAnd:
			flat = append(flat, c.Children...)
		default:
			flat = append(flat, c)
		}
	}
	switch len(flat) {
	case 0:
		return Always()
	case 1:
		return flat[0]
	}
	return Rule{Kind: KindAnd, Children: flat}
}

// Or requires any child. Nested Ors are flattened and Never children
// dropped; an Always child makes the whole rule Always.
func Or(children ...Rule) Rule {
	flat := make([]Rule, 0, len(children))
	for _, c := range children {
		switch c.Kind {
		case KindFalse:
			continue
		case KindTrue:
			return Always()
		case KindOr:
			flat = append(flat, c.Children...)
		default:
			flat = append(flat, c)
		}
	}
	switch len(flat) {
	case 0:
		return Never()
	case 1:
		return flat[0]
	}
	return Rule{Kind: KindOr, Children: flat}
}

// Evaluate walks the tree against state for player.
func (r Rule) Evaluate(state State, player int) bool {
	switch r.Kind {
	case KindTrue:
		return true
	case KindHas:
		return state.Count(r.Item, player) >= 1
	case KindHasCount:
		return state.Count(r.Item, player) >= r.Count
	case KindAnd:
		for _, c := range r.Children {
			if !c.Evaluate(state, player) {
				return false
			}
		}
		return true
	case KindOr:
		for _, c := range r.Children {
			if c.Evaluate(state, player) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Items returns the sorted set of item names the rule mentions.
func (r Rule) Items() []string {
	seen := make(map[string]struct{})
	r.collectItems(seen)

	items := make([]string, 0, len(seen))
	for item := range seen {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

func (r Rule) collectItems(seen map[string]struct{}) {
	if r.Item != "" {
		seen[r.Item] = struct{}{}
	}
	for _, c := range r.Children {
		c.collectItems(seen)
	}
}

// IsAlways reports whether the rule is the constant true rule.
func (r Rule) IsAlways() bool {
	return r.Kind == KindTrue
}

// IsNever reports whether the rule is the constant false rule.
func (r Rule) IsNever() bool {
	return r.Kind == KindFalse
}

// String renders the rule in a readable prefix form.
func (r Rule) String() string {
	switch r.Kind {
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindHas:
		return fmt.Sprintf("has(%q)", r.Item)
	case KindHasCount:
		return fmt.Sprintf("has(%q, %d)", r.Item, r.Count)
	case KindAnd, KindOr:
		parts := make([]string, len(r.Children))
		for i, c := range r.Children {
			parts[i] = c.String()
		}
		return fmt.Sprintf("%s(%s)", r.Kind, strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("invalid(%s)", r.Kind)
	}
}
