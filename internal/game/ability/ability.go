// Package ability provides ability scores and the score-to-modifier conversion.
package ability

import "fmt"

// Score is an ability score in the range 1-30.
type Score = int

// Modifier is the signed bonus derived from a Score, in the range -5 to +10.
type Modifier = int

// MinScore and MaxScore bound a valid ability score.
const (
	MinScore Score = 1
	MaxScore Score = 30
)

// ScoreToModifier computes floor((score - 10) / 2).
//
// Go integer division truncates toward zero, so odd scores below 10 are
// adjusted down explicitly.
//
// Postcondition: Returns floor((score - 10) / 2) for any score.
func ScoreToModifier(score Score) Modifier {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// Scores holds the six ability scores of a creature.
type Scores struct {
	Strength     Score `yaml:"strength"`
	Dexterity    Score `yaml:"dexterity"`
	Constitution Score `yaml:"constitution"`
	Intelligence Score `yaml:"intelligence"`
	Wisdom       Score `yaml:"wisdom"`
	Charisma     Score `yaml:"charisma"`
}

// Modifiers holds the six ability modifiers of a creature.
type Modifiers struct {
	Strength     Modifier
	Dexterity    Modifier
	Constitution Modifier
	Intelligence Modifier
	Wisdom       Modifier
	Charisma     Modifier
}

// Modifiers converts every score to its modifier.
func (s Scores) Modifiers() Modifiers {
	return Modifiers{
		Strength:     ScoreToModifier(s.Strength),
		Dexterity:    ScoreToModifier(s.Dexterity),
		Constitution: ScoreToModifier(s.Constitution),
		Intelligence: ScoreToModifier(s.Intelligence),
		Wisdom:       ScoreToModifier(s.Wisdom),
		Charisma:     ScoreToModifier(s.Charisma),
	}
}

// Validate reports the first score outside [MinScore, MaxScore].
//
// Postcondition: Returns nil iff every score is in range.
func (s Scores) Validate() error {
	named := []struct {
		name  string
		score Score
	}{
		{"strength", s.Strength},
		{"dexterity", s.Dexterity},
		{"constitution", s.Constitution},
		{"intelligence", s.Intelligence},
		{"wisdom", s.Wisdom},
		{"charisma", s.Charisma},
	}
	for _, n := range named {
		if n.score < MinScore || n.score > MaxScore {
			return fmt.Errorf("%s must be %d-%d, got %d", n.name, MinScore, MaxScore, n.score)
		}
	}
	return nil
}

// FormatModifier renders a modifier with an explicit sign, e.g. "+3" or "-1".
func FormatModifier(m Modifier) string {
	return fmt.Sprintf("%+d", m)
}
