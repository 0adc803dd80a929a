// Package combat implements the turn and round state engine of an encounter.
package combat

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/initiative/internal/game/ability"
	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/monster"
)

// Kind is the creature data a Combatant is backed by.
// The set of kinds is closed: MonsterKind and PlayerKind.
type Kind interface {
	isKind()
}

// MonsterKind backs a combatant with a bestiary stat block.
type MonsterKind struct {
	Monster *monster.Monster
	// HitPoints overrides the stat block's hit points when > 0, e.g. after a roll.
	HitPoints int
}

func (MonsterKind) isKind() {}

// PlayerKind backs a combatant with a party member entry.
type PlayerKind struct {
	Name             string `yaml:"name"`
	MaxHP            int    `yaml:"max_hp"`
	AC               int    `yaml:"ac"`
	Speed            string `yaml:"speed"`
	ProficiencyBonus int    `yaml:"proficiency_bonus"`
	InitiativeBonus  int    `yaml:"initiative_bonus"`
}

func (PlayerKind) isKind() {}

// Combatant is one participant in an encounter.
//
// Values handed out by a Tracker are copies; state only changes through Tracker operations.
type Combatant struct {
	ID   string
	Kind Kind

	hitPoints  int
	actions    Action
	conditions condition.Set
	initiative int
}

// NewCombatant creates a combatant at full hit points with the default action budget.
//
// Precondition: kind must be a non-nil MonsterKind (with a non-nil Monster) or PlayerKind.
// Postcondition: HitPoints() == MaxHitPoints(); Actions() == DefaultAction().
func NewCombatant(kind Kind) *Combatant {
	if kind == nil {
		panic("combat: NewCombatant called with nil kind")
	}
	if mk, ok := kind.(MonsterKind); ok && mk.Monster == nil {
		panic("combat: MonsterKind without a stat block")
	}
	c := &Combatant{
		ID:      uuid.New().String(),
		Kind:    kind,
		actions: DefaultAction(),
	}
	c.hitPoints = c.MaxHitPoints()
	return c
}

// Name returns the display name.
func (c Combatant) Name() string {
	switch k := c.Kind.(type) {
	case MonsterKind:
		return k.Monster.Name
	case PlayerKind:
		return k.Name
	default:
		panic("combat: unknown combatant kind")
	}
}

// MaxHitPoints returns the hit point maximum.
func (c Combatant) MaxHitPoints() int {
	switch k := c.Kind.(type) {
	case MonsterKind:
		if k.HitPoints > 0 {
			return k.HitPoints
		}
		return k.Monster.HitPoints
	case PlayerKind:
		return k.MaxHP
	default:
		panic("combat: unknown combatant kind")
	}
}

// ArmorClass returns the armor class.
func (c Combatant) ArmorClass() int {
	switch k := c.Kind.(type) {
	case MonsterKind:
		return k.Monster.ArmorClass()
	case PlayerKind:
		return k.AC
	default:
		panic("combat: unknown combatant kind")
	}
}

// ProficiencyBonus returns the proficiency bonus.
func (c Combatant) ProficiencyBonus() int {
	switch k := c.Kind.(type) {
	case MonsterKind:
		return k.Monster.ProficiencyBonus
	case PlayerKind:
		return k.ProficiencyBonus
	default:
		panic("combat: unknown combatant kind")
	}
}

// Speed returns the descriptive movement speed, e.g. "30 ft., fly 60 ft.".
func (c Combatant) Speed() string {
	switch k := c.Kind.(type) {
	case MonsterKind:
		return k.Monster.Speed.String()
	case PlayerKind:
		return k.Speed
	default:
		panic("combat: unknown combatant kind")
	}
}

// InitiativeModifier returns the bonus added to the initiative d20.
// Monsters use their DEX modifier.
func (c Combatant) InitiativeModifier() int {
	switch k := c.Kind.(type) {
	case MonsterKind:
		return ability.ScoreToModifier(k.Monster.Scores.Dexterity)
	case PlayerKind:
		return k.InitiativeBonus
	default:
		panic("combat: unknown combatant kind")
	}
}

// IsPlayer reports whether this combatant is a party member.
func (c Combatant) IsPlayer() bool {
	_, ok := c.Kind.(PlayerKind)
	return ok
}

// HitPoints returns current hit points; may be zero or negative.
func (c Combatant) HitPoints() int { return c.hitPoints }

// Defeated reports whether current hit points are at or below zero.
func (c Combatant) Defeated() bool { return c.hitPoints <= 0 }

// Actions returns the remaining action budget.
func (c Combatant) Actions() Action { return c.actions }

// Conditions returns the active conditions in application order.
func (c Combatant) Conditions() []condition.Condition { return c.conditions.All() }

// Condition returns the active condition of kind k.
func (c Combatant) Condition(k condition.Kind) (condition.Condition, bool) {
	return c.conditions.Get(k)
}

// HasCondition reports whether a condition of kind k is active.
func (c Combatant) HasCondition(k condition.Kind) bool { return c.conditions.Has(k) }

// Initiative returns the last rolled initiative total, or 0 if never rolled.
func (c Combatant) Initiative() int { return c.initiative }

// HealthDescription returns a coarse health label for display.
//
// Postcondition: Returns a non-empty string.
func (c Combatant) HealthDescription() string {
	if c.hitPoints <= 0 {
		return "defeated"
	}
	maxHP := c.MaxHitPoints()
	if maxHP <= 0 {
		return "unharmed"
	}
	pct := float64(c.hitPoints) / float64(maxHP)
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct > 0.5:
		return "wounded"
	case pct > 0.25:
		return "bloodied"
	default:
		return "critical"
	}
}

// snapshot returns a copy that shares no mutable state with c.
func (c *Combatant) snapshot() Combatant {
	cp := *c
	cp.conditions = c.conditions.Clone()
	return cp
}

func (c *Combatant) damage(amount int) { c.hitPoints -= amount }

func (c *Combatant) resetActions() { c.actions = DefaultAction() }

func (c *Combatant) spend(t ActionType) bool { return c.actions.Spend(t) }

func (c *Combatant) applyCondition(cond condition.Condition) bool {
	return c.conditions.Apply(cond)
}

func (c *Combatant) removeCondition(k condition.Kind) bool { return c.conditions.Remove(k) }

func (c *Combatant) tickConditions() []condition.Kind { return c.conditions.Tick() }
