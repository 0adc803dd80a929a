package ability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/initiative/internal/game/ability"
)

func TestScoreToModifier_Table(t *testing.T) {
	want := map[int]int{
		1: -5, 2: -4, 3: -4, 4: -3, 5: -3, 6: -2, 7: -2, 8: -1, 9: -1, 10: 0,
		11: 0, 12: 1, 13: 1, 14: 2, 15: 2, 16: 3, 17: 3, 18: 4, 19: 4, 20: 5,
		21: 5, 22: 6, 23: 6, 24: 7, 25: 7, 26: 8, 27: 8, 28: 9, 29: 9, 30: 10,
	}
	for score, mod := range want {
		assert.Equal(t, mod, ability.ScoreToModifier(score), "score %d", score)
	}
}

func TestScores_Modifiers(t *testing.T) {
	s := ability.Scores{Strength: 8, Dexterity: 14, Constitution: 10, Intelligence: 10, Wisdom: 8, Charisma: 8}
	m := s.Modifiers()
	assert.Equal(t, -1, m.Strength)
	assert.Equal(t, 2, m.Dexterity)
	assert.Equal(t, 0, m.Constitution)
}

func TestScores_Validate(t *testing.T) {
	s := ability.Scores{Strength: 10, Dexterity: 10, Constitution: 10, Intelligence: 10, Wisdom: 10, Charisma: 10}
	assert.NoError(t, s.Validate())
	s.Wisdom = 0
	assert.Error(t, s.Validate())
	s.Wisdom = 31
	assert.Error(t, s.Validate())
}

func TestFormatModifier(t *testing.T) {
	assert.Equal(t, "+3", ability.FormatModifier(3))
	assert.Equal(t, "-1", ability.FormatModifier(-1))
	assert.Equal(t, "+0", ability.FormatModifier(0))
}

func TestPropertyScoreToModifier_IsFloor(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		score := rapid.IntRange(ability.MinScore, ability.MaxScore).Draw(rt, "score")
		mod := ability.ScoreToModifier(score)
		// floor: 2*mod <= score-10 < 2*mod+2
		assert.LessOrEqual(rt, 2*mod, score-10)
		assert.Less(rt, score-10, 2*mod+2)
		assert.GreaterOrEqual(rt, mod, -5)
		assert.LessOrEqual(rt, mod, 10)
	})
}
