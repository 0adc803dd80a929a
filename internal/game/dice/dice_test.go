package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/initiative/internal/game/dice"
)

// seqSource returns the queued values in order, cycling when exhausted.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

func TestParse_Forms(t *testing.T) {
	cases := []struct {
		in                     string
		count, sides, modifier int
	}{
		{"d20", 1, 20, 0},
		{"2d6", 2, 6, 0},
		{"7d10+14", 7, 10, 14},
		{"1d4-1", 1, 4, -1},
		{" 33d20 + 330 ", 33, 20, 330},
		{"2D8", 2, 8, 0},
	}
	for _, c := range cases {
		e, err := dice.Parse(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.count, e.Count, "input %q", c.in)
		assert.Equal(t, c.sides, e.Sides, "input %q", c.in)
		assert.Equal(t, c.modifier, e.Modifier, "input %q", c.in)
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "20", "0d6", "2d1", "2d", "xd6", "2d6+", "2d6*2"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestExpression_String(t *testing.T) {
	e, err := dice.Parse("7d10+14")
	require.NoError(t, err)
	assert.Equal(t, "7d10+14", e.String())
	e, err = dice.Parse("d6")
	require.NoError(t, err)
	assert.Equal(t, "1d6", e.String())
}

func TestRoll_UsesSource(t *testing.T) {
	e, err := dice.Parse("2d6+3")
	require.NoError(t, err)
	r := dice.Roll(e, &seqSource{vals: []int{3, 4}})
	assert.Equal(t, []int{4, 5}, r.Dice)
	assert.Equal(t, 12, r.Total())
	assert.Equal(t, "2d6+3 → [4 5] = 12", r.String())
}

func TestRoller_LogsAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	roller := dice.NewRoller(&seqSource{vals: []int{19}}, zap.New(core))
	r, err := roller.RollExpr("1d20+2")
	require.NoError(t, err)
	assert.Equal(t, 22, r.Total())
	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(22), entries[0].ContextMap()["total"])
}

func TestRoller_RollExpr_ParseError(t *testing.T) {
	roller := dice.NewRoller(&seqSource{vals: []int{0}}, zap.NewNop())
	_, err := roller.RollExpr("banana")
	assert.Error(t, err)
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
}

func TestSeededSource_Replays(t *testing.T) {
	a, b := dice.NewSeededSource(42), dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(20), b.Intn(20), "draw %d", i)
	}
}

func TestSeededSource_ConcurrentUse(t *testing.T) {
	src := dice.NewSeededSource(7)
	done := make(chan struct{})
	for g := 0; g < 4; g++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 250; i++ {
				if v := src.Intn(8); v < 0 || v >= 8 {
					t.Errorf("Intn(8) = %d", v)
				}
			}
		}()
	}
	for g := 0; g < 4; g++ {
		<-done
	}
}

func TestPropertyRoll_TotalWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 20).Draw(rt, "count")
		sides := rapid.IntRange(2, 20).Draw(rt, "sides")
		mod := rapid.IntRange(-10, 50).Draw(rt, "mod")
		e := dice.Expression{Count: count, Sides: sides, Modifier: mod}
		seed := rapid.Uint64().Draw(rt, "seed")
		r := dice.Roll(e, dice.NewSeededSource(seed))
		require.Len(rt, r.Dice, count)
		assert.GreaterOrEqual(rt, r.Total(), count+mod)
		assert.LessOrEqual(rt, r.Total(), count*sides+mod)
	})
}

func TestPropertyParse_RoundTripsCanonical(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := dice.Expression{
			Count:    rapid.IntRange(1, 40).Draw(rt, "count"),
			Sides:    rapid.IntRange(2, 100).Draw(rt, "sides"),
			Modifier: rapid.IntRange(-50, 50).Draw(rt, "mod"),
		}
		got, err := dice.Parse(e.String())
		require.NoError(rt, err)
		assert.Equal(rt, e.Count, got.Count)
		assert.Equal(rt, e.Sides, got.Sides)
		assert.Equal(rt, e.Modifier, got.Modifier)
	})
}
