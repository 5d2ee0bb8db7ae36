package rules

import (
	"github.com/KirkDiggler/ow-rando/internal/errors"
)

// Expression is the declarative form of a rule as written in the data
// files. Exactly one of Item, And, Or or AnyOf is set per node:
//
//	{item: Scout}
//	{item: Nomai Warp Codes, count: 2}
//	{and: [...]}
//	{or: [...]}      # anyOf is accepted as an alias
//
// A list of expressions is an implicit And.
type Expression struct {
	Item  string       `yaml:"item,omitempty" json:"item,omitempty"`
	Count int          `yaml:"count,omitempty" json:"count,omitempty"`
	And   []Expression `yaml:"and,omitempty" json:"and,omitempty"`
	Or    []Expression `yaml:"or,omitempty" json:"or,omitempty"`
	AnyOf []Expression `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
}

// KnownItem reports whether an item name was declared.
type KnownItem func(name string) bool

// Compile turns a requirement list into a Rule. Unknown items and malformed
// nodes are configuration errors.
func Compile(requires []Expression, known KnownItem) (Rule, error) {
	children := make([]Rule, 0, len(requires))
	for i, expr := range requires {
		child, err := compile(expr, known)
		if err != nil {
			return Rule{}, errors.Wrapf(err, "requirement %d", i)
		}
		children = append(children, child)
	}
	return And(children...), nil
}

func compile(expr Expression, known KnownItem) (Rule, error) {
	forms := 0
	if expr.Item != "" {
		forms++
	}
	if expr.And != nil {
		forms++
	}
	if expr.Or != nil {
		forms++
	}
	if expr.AnyOf != nil {
		forms++
	}
	if forms != 1 {
		return Rule{}, errors.Configuration("rule node must set exactly one of item, and, or, anyOf (got %d)", forms)
	}

	if expr.Count != 0 && expr.Item == "" {
		return Rule{}, errors.Configuration("count is only valid together with item")
	}

	switch {
	case expr.Item != "":
		if expr.Count < 0 {
			return Rule{}, errors.Configuration("count for %q must not be negative", expr.Item)
		}
		if known != nil && !known(expr.Item) {
			return Rule{}, errors.DanglingReference("item", expr.Item)
		}
		return HasCount(expr.Item, expr.Count), nil

	case expr.And != nil:
		return compileAll(expr.And, known, And)

	case expr.Or != nil:
		return compileAll(expr.Or, known, Or)

	default:
		return compileAll(expr.AnyOf, known, Or)
	}
}

func compileAll(exprs []Expression, known KnownItem, combine func(...Rule) Rule) (Rule, error) {
	if len(exprs) == 0 {
		return Rule{}, errors.Configuration("and/or nodes need at least one child")
	}
	children := make([]Rule, 0, len(exprs))
	for _, expr := range exprs {
		child, err := compile(expr, known)
		if err != nil {
			return Rule{}, err
		}
		children = append(children, child)
	}
	return combine(children...), nil
}
