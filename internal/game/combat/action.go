package combat

// ActionType identifies one of the three per-turn action counters.
type ActionType int

const (
	ActionStandard ActionType = iota
	ActionBonus
	ActionReaction
)

// String returns the human-readable name of the ActionType.
// Postcondition: returns "action", "bonus action", "reaction", or "unknown".
func (t ActionType) String() string {
	switch t {
	case ActionStandard:
		return "action"
	case ActionBonus:
		return "bonus action"
	case ActionReaction:
		return "reaction"
	default:
		return "unknown"
	}
}

// Action is a combatant's remaining action budget for the current turn.
type Action struct {
	Actions      uint32
	BonusActions uint32
	Reactions    uint32
}

// DefaultAction returns the budget every combatant starts its turn with.
//
// Postcondition: Returns Action{1, 1, 1}.
func DefaultAction() Action {
	return Action{Actions: 1, BonusActions: 1, Reactions: 1}
}

// Remaining returns the counter for t.
//
// Precondition: t must be ActionStandard, ActionBonus, or ActionReaction.
func (a Action) Remaining(t ActionType) uint32 {
	switch t {
	case ActionStandard:
		return a.Actions
	case ActionBonus:
		return a.BonusActions
	case ActionReaction:
		return a.Reactions
	default:
		panic("combat: unknown action type")
	}
}

// Spend decrements the counter for t by one.
//
// Precondition: t must be ActionStandard, ActionBonus, or ActionReaction.
// Postcondition: Returns false and leaves a unchanged when the counter is 0;
// otherwise decrements it by exactly 1 and returns true.
func (a *Action) Spend(t ActionType) bool {
	var counter *uint32
	switch t {
	case ActionStandard:
		counter = &a.Actions
	case ActionBonus:
		counter = &a.BonusActions
	case ActionReaction:
		counter = &a.Reactions
	default:
		panic("combat: unknown action type")
	}
	if *counter == 0 {
		return false
	}
	*counter--
	return true
}

// Exhausted reports whether every counter is zero.
func (a Action) Exhausted() bool {
	return a.Actions == 0 && a.BonusActions == 0 && a.Reactions == 0
}
