package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cory-johannsen/initiative/internal/game/combat"
	"github.com/cory-johannsen/initiative/internal/game/condition"
)

// conditionColors gives each condition kind a stable display color.
var conditionColors = map[condition.Kind]string{
	condition.Blinded:       White,
	condition.Charmed:       Magenta,
	condition.Deafened:      Yellow,
	condition.Exhaustion:    Green,
	condition.Frightened:    BrightYellow,
	condition.Grappled:      Red,
	condition.Incapacitated: BrightBlue,
	condition.Invisible:     BrightBlack,
	condition.Paralyzed:     Blue,
	condition.Petrified:     BrightBlack,
	condition.Poisoned:      Green,
	condition.Prone:         BrightRed,
	condition.Restrained:    Yellow,
	condition.Stunned:       BrightCyan,
	condition.Unconscious:   Blue,
}

// Renderer formats tracker read-surface values as terminal text.
type Renderer struct {
	color   bool
	printer *message.Printer
}

// New creates a Renderer. When color is false no escape sequences are emitted.
func New(color bool) *Renderer {
	return &Renderer{color: color, printer: message.NewPrinter(language.English)}
}

func (r *Renderer) paint(color, text string) string {
	if !r.color || text == "" {
		return text
	}
	return Colorize(color, text)
}

// ActionLine renders the remaining budget compactly, e.g. "A,BA,R", "AA,R" or "Ax4".
// An exhausted budget renders as "-".
func (r *Renderer) ActionLine(a combat.Action) string {
	if a.Exhausted() {
		return r.paint(Dim, "-")
	}
	var parts []string
	add := func(label, color string, n uint32) {
		if n == 0 {
			return
		}
		var s string
		if n <= 3 {
			s = strings.Repeat(label, int(n))
		} else {
			s = fmt.Sprintf("%sx%d", label, n)
		}
		parts = append(parts, r.paint(color, s))
	}
	add("A", Green, a.Actions)
	add("BA", Yellow, a.BonusActions)
	add("R", Magenta, a.Reactions)
	return strings.Join(parts, ",")
}

// HitPoints renders "cur / max", coloring the current value by remaining fraction.
func (r *Renderer) HitPoints(c combat.Combatant) string {
	cur, maxHP := c.HitPoints(), c.MaxHitPoints()
	color := Green
	switch {
	case cur <= 0:
		color = BrightBlack
	case maxHP > 0 && cur*4 <= maxHP:
		color = Red
	case maxHP > 0 && cur*2 <= maxHP:
		color = Yellow
	}
	return r.paint(color, fmt.Sprintf("%d", cur)) + fmt.Sprintf(" / %d", maxHP)
}

// CompactConditions renders conditions as "STU:2,PRO"; Forever conditions omit the count.
func (r *Renderer) CompactConditions(conds []condition.Condition) string {
	parts := make([]string, 0, len(conds))
	for _, cond := range conds {
		s := cond.Kind.Abbreviation()
		if left, ok := cond.Duration.RoundsLeft(); ok {
			s = fmt.Sprintf("%s:%d", s, left)
		}
		parts = append(parts, r.paint(conditionColors[cond.Kind], s))
	}
	return strings.Join(parts, ",")
}

// RoundHeader renders "Round: 1  Turn: 1/2". Round 0 displays as Round 1.
func (r *Renderer) RoundHeader(round, turn, n int) string {
	return r.paint(Bold, fmt.Sprintf("Round: %d  Turn: %d/%d", round+1, turn+1, n))
}

// Tracker renders the full initiative table. Party members' names are
// painted cyan.
//
// Precondition: combatants is the tracker roster in turn order and 0 <= turn < len(combatants).
func (r *Renderer) Tracker(round, turn int, combatants []combat.Combatant) string {
	header := []string{"#", "Name", "Actions", "HP / Max HP", "Conditions"}
	rows := make([][]string, 0, len(combatants))
	for i, c := range combatants {
		name := c.Name()
		if c.IsPlayer() {
			name = r.paint(Cyan, name)
		}
		if c.Defeated() {
			name += " (Dead)"
		}
		if i == turn {
			name = r.paint(Bold, "> "+name)
		} else {
			name = "  " + name
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			name,
			r.ActionLine(c.Actions()),
			r.HitPoints(c),
			r.CompactConditions(c.Conditions()),
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = VisibleWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := VisibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	b.WriteString(r.RoundHeader(round, turn, len(combatants)))
	b.WriteString("\n\n")
	writeRow := func(cells []string) {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			padded[i] = PadRight(cell, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(padded, "  "), " "))
		b.WriteString("\n")
	}
	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}
