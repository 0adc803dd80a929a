package combat

import (
	"sort"

	"github.com/cory-johannsen/initiative/internal/game/dice"
)

// Roller evaluates dice expressions. *dice.Roller satisfies it.
type Roller interface {
	Roll(e dice.Expression) dice.Result
}

// RollInitiative rolls initiative for all combatants and records the totals.
// Formula: d20 + InitiativeModifier.
//
// Precondition: combatants and r must be non-nil.
// Postcondition: Each combatant's Initiative() is d20 + InitiativeModifier().
func RollInitiative(combatants []*Combatant, r Roller) {
	for _, c := range combatants {
		c.initiative = r.Roll(dice.D20).Total() + c.InitiativeModifier()
	}
}

// SortByInitiative orders combatants in place, highest initiative first.
// Ties keep their original relative order.
func SortByInitiative(combatants []*Combatant) {
	sort.SliceStable(combatants, func(i, j int) bool {
		return combatants[i].initiative > combatants[j].initiative
	})
}
