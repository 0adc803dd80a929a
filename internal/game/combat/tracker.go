package combat

import (
	"fmt"

	"github.com/cory-johannsen/initiative/internal/game/condition"
)

// TurnChange summarizes one AdvanceTurn transition.
type TurnChange struct {
	// Ended is the index of the combatant whose turn ended.
	Ended int
	// Expired lists the conditions removed from the ended combatant.
	Expired []condition.Kind
	// Turn and Round are the tracker position after the transition.
	Turn  int
	Round int
	// NewRound is true when the transition wrapped to the top of the order.
	NewRound bool
}

// Tracker owns an ordered roster and drives turn and round progression.
//
// A Tracker is not safe for concurrent use; see Encounter.
type Tracker struct {
	turn       int
	round      int
	combatants []*Combatant
}

// NewTracker creates a Tracker positioned at turn 0 of round 0.
//
// Precondition: combatants must be non-empty and contain no nil entries.
// Postcondition: The roster order is preserved and its size is fixed for the Tracker's lifetime.
func NewTracker(combatants []*Combatant) *Tracker {
	if len(combatants) == 0 {
		panic("combat: NewTracker called with an empty roster")
	}
	roster := make([]*Combatant, len(combatants))
	for i, c := range combatants {
		if c == nil {
			panic(fmt.Sprintf("combat: roster entry %d is nil", i))
		}
		roster[i] = c
	}
	return &Tracker{combatants: roster}
}

// Turn returns the index of the active combatant.
func (t *Tracker) Turn() int { return t.turn }

// Round returns the zero-based round number. Round 0 is displayed as "Round 1".
func (t *Tracker) Round() int { return t.round }

// Len returns the roster size.
func (t *Tracker) Len() int { return len(t.combatants) }

// Combatant returns a copy of the combatant at index i.
//
// Precondition: 0 <= i < Len().
func (t *Tracker) Combatant(i int) Combatant {
	return t.at(i).snapshot()
}

// Combatants returns copies of the whole roster in turn order.
func (t *Tracker) Combatants() []Combatant {
	out := make([]Combatant, len(t.combatants))
	for i, c := range t.combatants {
		out[i] = c.snapshot()
	}
	return out
}

// Current returns a copy of the active combatant.
func (t *Tracker) Current() Combatant {
	return t.combatants[t.turn].snapshot()
}

// AdvanceTurn ends the active combatant's turn and makes the next one current.
//
// Postcondition: The ended combatant's conditions were decremented and expired ones removed;
// turn == (old turn + 1) mod Len(); round was incremented iff turn wrapped to 0;
// the new active combatant's Actions() == DefaultAction().
func (t *Tracker) AdvanceTurn() TurnChange {
	ended := t.turn
	expired := t.combatants[ended].tickConditions()

	next := (t.turn + 1) % len(t.combatants)
	if next == 0 {
		t.round++
	}
	t.turn = next
	t.combatants[next].resetActions()

	return TurnChange{
		Ended:    ended,
		Expired:  expired,
		Turn:     t.turn,
		Round:    t.round,
		NewRound: next == 0,
	}
}

// Use spends one unit of t from the active combatant.
//
// Postcondition: Returns false with no mutation when the counter is 0;
// otherwise decrements it by exactly 1 and returns true.
func (t *Tracker) Use(at ActionType) bool {
	return t.combatants[t.turn].spend(at)
}

// UseAction spends the active combatant's action.
func (t *Tracker) UseAction() bool { return t.Use(ActionStandard) }

// UseBonusAction spends the active combatant's bonus action.
func (t *Tracker) UseBonusAction() bool { return t.Use(ActionBonus) }

// UseReaction spends the active combatant's reaction.
func (t *Tracker) UseReaction() bool { return t.Use(ActionReaction) }

// Damage subtracts amount from each target's hit points. A negative amount heals.
// Hit points are not clamped.
//
// Precondition: every target index must be in [0, Len()).
// Postcondition: No combatant is modified if any index is out of range.
func (t *Tracker) Damage(targets []int, amount int) {
	t.checkTargets(targets)
	for _, i := range targets {
		t.combatants[i].damage(amount)
	}
}

// ApplyCondition applies every kind in kinds with duration d to each target.
// An existing condition of the same kind keeps the longer of the two durations.
//
// Precondition: every target index must be in [0, Len()); every kind must be valid.
func (t *Tracker) ApplyCondition(targets []int, kinds []condition.Kind, d condition.Duration) {
	t.checkTargets(targets)
	checkKinds(kinds)
	for _, i := range targets {
		for _, k := range kinds {
			t.combatants[i].applyCondition(condition.Condition{Kind: k, Duration: d})
		}
	}
}

// RemoveCondition removes every kind in kinds from each target. Absent kinds are ignored.
//
// Precondition: every target index must be in [0, Len()); every kind must be valid.
// Postcondition: Returns the number of conditions removed.
func (t *Tracker) RemoveCondition(targets []int, kinds []condition.Kind) int {
	t.checkTargets(targets)
	checkKinds(kinds)
	removed := 0
	for _, i := range targets {
		for _, k := range kinds {
			if t.combatants[i].removeCondition(k) {
				removed++
			}
		}
	}
	return removed
}

func (t *Tracker) at(i int) *Combatant {
	if i < 0 || i >= len(t.combatants) {
		panic(fmt.Sprintf("combat: combatant index %d out of range [0, %d)", i, len(t.combatants)))
	}
	return t.combatants[i]
}

func (t *Tracker) checkTargets(targets []int) {
	for _, i := range targets {
		t.at(i)
	}
}

func checkKinds(kinds []condition.Kind) {
	for _, k := range kinds {
		if !k.Valid() {
			panic(fmt.Sprintf("combat: invalid condition kind %d", int(k)))
		}
	}
}
