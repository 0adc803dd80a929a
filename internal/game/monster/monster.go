// Package monster provides creature stat blocks and the YAML bestiary loader.
//
// Stat blocks are read-only reference data; the combat tracker only reads
// name, hit points, armor class, speed and proficiency bonus from them.
package monster

import (
	"fmt"
	"math"
	"strings"

	"github.com/cory-johannsen/initiative/internal/game/ability"
	"github.com/cory-johannsen/initiative/internal/game/dice"
)

// Sizes lists the valid creature sizes, smallest first.
var Sizes = []string{"Tiny", "Small", "Medium", "Large", "Huge", "Gargantuan"}

// ArmorClassEntry is one candidate armor class from the source data.
type ArmorClassEntry struct {
	// Type is "dex", "natural" or "armor".
	Type  string `yaml:"type"`
	Value int    `yaml:"value"`
}

// Speed holds the descriptive speed strings for each movement mode, e.g. "30 ft.".
type Speed struct {
	Walk   string `yaml:"walk"`
	Burrow string `yaml:"burrow"`
	Climb  string `yaml:"climb"`
	Fly    string `yaml:"fly"`
	Swim   string `yaml:"swim"`
}

// String renders the speeds in stat block order, e.g. "30 ft., fly 60 ft.".
func (s Speed) String() string {
	var parts []string
	if s.Walk != "" {
		parts = append(parts, s.Walk)
	}
	for _, m := range []struct{ label, v string }{
		{"burrow", s.Burrow},
		{"climb", s.Climb},
		{"fly", s.Fly},
		{"swim", s.Swim},
	} {
		if m.v != "" {
			parts = append(parts, m.label+" "+m.v)
		}
	}
	return strings.Join(parts, ", ")
}

// Usage constrains how often a special ability may be used.
type Usage struct {
	// Type is free text from the source data, e.g. "per day".
	Type      string   `yaml:"type"`
	Times     int      `yaml:"times"`
	RestTypes []string `yaml:"rest_types"`
}

// String renders the usage suffix shown after an ability name.
func (u Usage) String() string {
	switch {
	case u.Times > 0:
		return fmt.Sprintf("%d/Day", u.Times)
	case containsFold(u.RestTypes, "short"):
		// a short rest recharge is also covered by a long rest
		return "Recharges after a Short or Long Rest"
	case containsFold(u.RestTypes, "long"):
		return "Recharges after a Long Rest"
	default:
		return ""
	}
}

// SpecialAbility is a passive trait or limited-use feature.
type SpecialAbility struct {
	Name  string `yaml:"name"`
	Desc  string `yaml:"desc"`
	Usage Usage  `yaml:"usage"`
}

// Monster is a creature stat block.
type Monster struct {
	Index            string            `yaml:"index"`
	Name             string            `yaml:"name"`
	Size             string            `yaml:"size"`
	Type             string            `yaml:"type"`
	Subtype          string            `yaml:"subtype"`
	Alignment        string            `yaml:"alignment"`
	ArmorClasses     []ArmorClassEntry `yaml:"armor_class"`
	HitPoints        int               `yaml:"hit_points"`
	HitPointsRoll    string            `yaml:"hit_points_roll"`
	Speed            Speed             `yaml:"speed"`
	Scores           ability.Scores    `yaml:",inline"`
	ChallengeRating  float64           `yaml:"challenge_rating"`
	XP               int               `yaml:"xp"`
	ProficiencyBonus int               `yaml:"proficiency_bonus"`
	SpecialAbilities []SpecialAbility  `yaml:"special_abilities"`
}

// ArmorClass returns the first recognized armor class entry's value.
// Falls back to 10 + DEX modifier when no entry is recognized.
func (m *Monster) ArmorClass() int {
	for _, ac := range m.ArmorClasses {
		switch ac.Type {
		case "dex", "natural", "armor":
			return ac.Value
		}
	}
	return 10 + ability.ScoreToModifier(m.Scores.Dexterity)
}

// ArmorClassSource returns the type of the entry ArmorClass used, or "dex".
func (m *Monster) ArmorClassSource() string {
	for _, ac := range m.ArmorClasses {
		switch ac.Type {
		case "dex", "natural", "armor":
			return ac.Type
		}
	}
	return "dex"
}

// FormatChallengeRating renders a challenge rating, using fractions below 1, e.g. "1/4".
func FormatChallengeRating(cr float64) string {
	switch {
	case cr <= 0:
		return "0"
	case cr < 1:
		return fmt.Sprintf("1/%d", int(math.Round(1/cr)))
	default:
		return fmt.Sprintf("%g", cr)
	}
}

// Challenge renders the challenge rating with XP, e.g. "1/4 (50 XP)".
func (m *Monster) Challenge() string {
	return fmt.Sprintf("%s (%d XP)", FormatChallengeRating(m.ChallengeRating), m.XP)
}

// Description renders the size, type and alignment line, e.g.
// "Small humanoid (goblinoid), neutral evil".
func (m *Monster) Description() string {
	var b strings.Builder
	b.WriteString(m.Size)
	if m.Type != "" {
		b.WriteString(" ")
		b.WriteString(m.Type)
	}
	if m.Subtype != "" {
		fmt.Fprintf(&b, " (%s)", m.Subtype)
	}
	if m.Alignment != "" {
		b.WriteString(", ")
		b.WriteString(m.Alignment)
	}
	return b.String()
}

// Validate checks that the stat block satisfies basic invariants.
//
// Precondition: m must not be nil.
// Postcondition: Returns nil iff Index and Name are non-empty, HitPoints >= 1,
// every ability score is in 1-30, Size is known, and HitPointsRoll (if set) parses.
func (m *Monster) Validate() error {
	if m.Index == "" {
		return fmt.Errorf("monster: index must not be empty")
	}
	if m.Name == "" {
		return fmt.Errorf("monster %q: name must not be empty", m.Index)
	}
	if m.HitPoints < 1 {
		return fmt.Errorf("monster %q: hit_points must be >= 1", m.Index)
	}
	if err := m.Scores.Validate(); err != nil {
		return fmt.Errorf("monster %q: %w", m.Index, err)
	}
	if m.Size != "" && !containsFold(Sizes, m.Size) {
		return fmt.Errorf("monster %q: size %q must be one of %v", m.Index, m.Size, Sizes)
	}
	if m.HitPointsRoll != "" {
		if _, err := dice.Parse(m.HitPointsRoll); err != nil {
			return fmt.Errorf("monster %q: hit_points_roll: %w", m.Index, err)
		}
	}
	if m.ProficiencyBonus < 0 {
		return fmt.Errorf("monster %q: proficiency_bonus must be >= 0", m.Index)
	}
	return nil
}

// RollHitPoints rolls the monster's hit point expression. Monsters without an
// expression, or whose roll totals below 1, use their fixed HitPoints.
//
// Postcondition: Returns >= 1.
func (m *Monster) RollHitPoints(r *dice.Roller) int {
	if m.HitPointsRoll == "" {
		return m.HitPoints
	}
	res, err := r.RollExpr(m.HitPointsRoll)
	if err != nil || res.Total() < 1 {
		return m.HitPoints
	}
	return res.Total()
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
