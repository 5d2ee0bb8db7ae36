package world

import (
	"github.com/KirkDiggler/ow-rando/internal/options"
	"github.com/KirkDiggler/ow-rando/internal/rules"
)

// CompletionRule maps a goal to the rule the host evaluates to decide
// whether a player has finished.
func CompletionRule(goal options.Goal) (rules.Rule, error) {
	item, err := goal.VictoryItem()
	if err != nil {
		return rules.Rule{}, err
	}
	return rules.Has(item), nil
}
