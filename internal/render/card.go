package render

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/initiative/internal/game/ability"
	"github.com/cory-johannsen/initiative/internal/game/combat"
	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/monster"
)

// Card renders a combatant's combat-relevant statistics, its active
// conditions and, for monsters, the stat block details.
func (r *Renderer) Card(c combat.Combatant) string {
	var b strings.Builder

	title := c.Name()
	if c.Defeated() {
		title += " (Dead)"
	}
	b.WriteString(r.paint(BrightYellow, title))
	b.WriteString("\n")

	mk, isMonster := c.Kind.(combat.MonsterKind)
	if isMonster {
		if desc := mk.Monster.Description(); desc != "" {
			b.WriteString(r.paint(Dim, desc))
			b.WriteString("\n")
		}
	}

	r.writeField(&b, "Armor Class", r.armorClass(c))
	r.writeField(&b, "Hit Points", r.HitPoints(c)+"  ("+c.HealthDescription()+")")
	r.writeField(&b, "Speed", c.Speed())
	r.writeField(&b, "Proficiency Bonus", ability.FormatModifier(c.ProficiencyBonus()))
	r.writeField(&b, "Actions", r.ActionLine(c.Actions()))
	if c.Initiative() != 0 {
		r.writeField(&b, "Initiative", fmt.Sprintf("%d", c.Initiative()))
	}

	if isMonster {
		b.WriteString(r.abilityScores(mk.Monster.Scores))
		r.writeField(&b, "Challenge", r.challenge(mk.Monster))
		for _, sa := range mk.Monster.SpecialAbilities {
			name := sa.Name
			if u := sa.Usage.String(); u != "" {
				name += " (" + u + ")"
			}
			b.WriteString(r.paint(Bold, name+"."))
			b.WriteString(" ")
			b.WriteString(sa.Desc)
			b.WriteString("\n")
		}
	}

	conds := c.Conditions()
	b.WriteString(r.paint(Cyan, "Conditions:"))
	if len(conds) == 0 {
		b.WriteString(" none\n")
		return b.String()
	}
	b.WriteString("\n")
	for _, cond := range conds {
		fmt.Fprintf(&b, "  %s  %s\n",
			PadRight(r.paint(conditionColors[cond.Kind], cond.Kind.String()), 13),
			cond.Duration)
	}
	return b.String()
}

// ConditionInfo renders the reference text for a condition kind.
// A nil def renders the kind name only.
func (r *Renderer) ConditionInfo(k condition.Kind, def *condition.Def) string {
	var b strings.Builder
	name := k.String()
	if def != nil && def.Name != "" {
		name = def.Name
	}
	fmt.Fprintf(&b, "%s (%s)\n", r.paint(conditionColors[k], name), k.Abbreviation())
	if def == nil {
		b.WriteString(r.paint(Dim, "No reference text loaded."))
		b.WriteString("\n")
		return b.String()
	}
	if def.Description != "" {
		b.WriteString(def.Description)
		b.WriteString("\n")
	}
	for _, e := range def.Effects {
		b.WriteString("  - ")
		b.WriteString(e)
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) writeField(b *strings.Builder, label, value string) {
	b.WriteString(PadRight(r.paint(Bold, label), 18))
	b.WriteString(value)
	b.WriteString("\n")
}

func (r *Renderer) armorClass(c combat.Combatant) string {
	ac := fmt.Sprintf("%d", c.ArmorClass())
	if mk, ok := c.Kind.(combat.MonsterKind); ok {
		switch mk.Monster.ArmorClassSource() {
		case "natural":
			ac += " (natural armor)"
		case "armor":
			ac += " (armor)"
		}
	}
	return ac
}

func (r *Renderer) abilityScores(s ability.Scores) string {
	labels := []string{"STR", "DEX", "CON", "INT", "WIS", "CHA"}
	scores := []ability.Score{s.Strength, s.Dexterity, s.Constitution, s.Intelligence, s.Wisdom, s.Charisma}
	var top, bottom []string
	for i, sc := range scores {
		top = append(top, PadRight(r.paint(Bold, labels[i]), 8))
		bottom = append(bottom, PadRight(fmt.Sprintf("%d (%s)", sc, ability.FormatModifier(ability.ScoreToModifier(sc))), 8))
	}
	return strings.TrimRight(strings.Join(top, ""), " ") + "\n" + strings.TrimRight(strings.Join(bottom, ""), " ") + "\n"
}

// challenge renders the challenge rating with a grouped XP figure, e.g. "8 (3,900 XP)".
func (r *Renderer) challenge(m *monster.Monster) string {
	return r.printer.Sprintf("%s (%d XP)", monster.FormatChallengeRating(m.ChallengeRating), m.XP)
}
