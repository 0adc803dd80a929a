package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/initiative/internal/game/ability"
	"github.com/cory-johannsen/initiative/internal/game/combat"
	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/monster"
	"github.com/cory-johannsen/initiative/internal/render"
)

func testMonster(index, name string, hp int) *monster.Monster {
	return &monster.Monster{
		Index:     index,
		Name:      name,
		HitPoints: hp,
		Scores:    ability.Scores{Strength: 10, Dexterity: 10, Constitution: 10, Intelligence: 10, Wisdom: 10, Charisma: 10},
	}
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *combat.Encounter, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	eng := combat.NewEngine(33, logger)
	enc, err := eng.Start([]*combat.Combatant{
		combat.NewCombatant(combat.MonsterKind{Monster: testMonster("goblin", "Goblin", 7)}),
		combat.NewCombatant(combat.MonsterKind{Monster: testMonster("ogre", "Ogre", 59)}),
	})
	require.NoError(t, err)

	conds := condition.NewRegistry()
	conds.Register(&condition.Def{ID: "stunned", Name: "Stunned", Kind: condition.Stunned, Description: "Cannot move."})

	d := NewDispatcher(DefaultRegistry(), enc, conds, render.New(false), logger)
	return d, enc, logs
}

func exec(t *testing.T, d *Dispatcher, line string) Result {
	t.Helper()
	res, err := d.Execute(line)
	require.NoError(t, err, line)
	return res
}

func snapshot(enc *combat.Encounter) (turn, round int, roster []combat.Combatant) {
	enc.Do(func(tr *combat.Tracker) {
		turn, round, roster = tr.Turn(), tr.Round(), tr.Combatants()
	})
	return
}

func TestExecute_Blank(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	res, err := d.Execute("   ")
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestExecute_UnknownCommand(t *testing.T) {
	d, _, logs := newTestDispatcher(t)
	_, err := d.Execute("fireball 1")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Equal(t, 0, logs.FilterMessage("command executed").Len())

	_, err = d.Execute("re 1")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), "reaction, remove")
}

func TestExecute_PrefixResolves(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	assert.Equal(t, "Goblin takes 2 damage (5 / 7).\n", exec(t, d, "dam 1 2").Output)
}

func TestExecute_NextScenario(t *testing.T) {
	d, enc, logs := newTestDispatcher(t)

	res := exec(t, d, "next")
	assert.Equal(t, "It is Ogre's turn.\n", res.Output)
	assert.True(t, res.Redraw)
	turn, round, _ := snapshot(enc)
	assert.Equal(t, [2]int{1, 0}, [2]int{turn, round})

	res = exec(t, d, "n")
	assert.Equal(t, "Round 2 begins.\nIt is Goblin's turn.\n", res.Output)
	turn, round, _ = snapshot(enc)
	assert.Equal(t, [2]int{0, 1}, [2]int{turn, round})

	exec(t, d, "n")
	turn, round, _ = snapshot(enc)
	assert.Equal(t, [2]int{1, 1}, [2]int{turn, round})

	assert.Equal(t, 3, logs.FilterMessage("turn advanced").Len())
	assert.Equal(t, 3, logs.FilterMessage("command executed").Len())
}

func TestExecute_SpendActions(t *testing.T) {
	d, enc, _ := newTestDispatcher(t)

	assert.Equal(t, "Goblin: action used (0 left).\n", exec(t, d, "action").Output)
	assert.Equal(t, "Goblin has no action left.\n", exec(t, d, "a").Output)
	exec(t, d, "b")
	exec(t, d, "r")

	_, _, roster := snapshot(enc)
	assert.True(t, roster[0].Actions().Exhausted())
	assert.Equal(t, combat.DefaultAction(), roster[1].Actions())

	_, err := d.Execute("a 1")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestExecute_DamageAndHeal(t *testing.T) {
	d, enc, _ := newTestDispatcher(t)

	res := exec(t, d, "damage 1 12")
	assert.Equal(t, "Goblin takes 12 damage (-5 / 7).\nGoblin is defeated.\n", res.Output)

	res = exec(t, d, "heal 1 6")
	assert.Equal(t, "Goblin regains 6 hit points (1 / 7).\nGoblin is back in the fight.\n", res.Output)

	exec(t, d, "d all 1")
	_, _, roster := snapshot(enc)
	assert.Equal(t, 0, roster[0].HitPoints())
	assert.Equal(t, 58, roster[1].HitPoints())
}

func TestExecute_DamageRejectsBadInput(t *testing.T) {
	d, enc, _ := newTestDispatcher(t)

	_, err := d.Execute("damage 3 5")
	assert.ErrorIs(t, err, ErrInvalidTarget)
	_, err = d.Execute("damage 1 five")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = d.Execute("damage 1")
	assert.ErrorIs(t, err, ErrUsage)

	_, _, roster := snapshot(enc)
	assert.Equal(t, 7, roster[0].HitPoints(), "rejected input must not change state")
}

func TestExecute_DamageRejectsOversizedAmount(t *testing.T) {
	d, enc, _ := newTestDispatcher(t)

	exec(t, d, "damage 1 12")
	_, err := d.Execute("damage 1 9223372036854775807")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = d.Execute("heal 2 1000001")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, roster := snapshot(enc)
	assert.Equal(t, -5, roster[0].HitPoints())
	assert.True(t, roster[0].Defeated())
	assert.Equal(t, 59, roster[1].HitPoints())
}

func TestExecute_ConditionLifecycle(t *testing.T) {
	d, enc, logs := newTestDispatcher(t)

	res := exec(t, d, "condition 1 stu 2r")
	assert.Equal(t, "Goblin: Stunned (2 rounds)\n", res.Output)

	res = exec(t, d, "c 1 stu 1r")
	assert.Equal(t, "Goblin: Stunned (2 rounds)\n", res.Output, "shorter duration does not shorten")

	exec(t, d, "next")
	exec(t, d, "next")
	res = exec(t, d, "next")
	assert.Equal(t, "Stunned has ended on Goblin.\nIt is Ogre's turn.\n", res.Output)

	_, _, roster := snapshot(enc)
	assert.False(t, roster[0].HasCondition(condition.Stunned))

	entries := logs.FilterMessage("turn advanced").All()
	require.Len(t, entries, 3)
	assert.Equal(t, []interface{}{"Stunned"}, entries[2].ContextMap()["expired"])
}

func TestExecute_ConditionRejectsBadInput(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	_, err := d.Execute("c 1 burning 2r")
	assert.ErrorIs(t, err, ErrUnknownCondition)
	_, err = d.Execute("c 1 stu 0r")
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = d.Execute("c 9 stu 2r")
	assert.ErrorIs(t, err, ErrInvalidTarget)
	_, err = d.Execute("c 1 stu")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestExecute_RemoveCondition(t *testing.T) {
	d, enc, _ := newTestDispatcher(t)
	exec(t, d, "c 1,2 prone,blinded forever")
	assert.Equal(t, "Removed 2 conditions.\n", exec(t, d, "rm all pro").Output)
	res := exec(t, d, "rm all pro")
	assert.Equal(t, "Removed 0 conditions.\n", res.Output)
	assert.False(t, res.Redraw)
	assert.Equal(t, "Removed 1 condition.\n", exec(t, d, "rm 1 bli").Output)

	_, _, roster := snapshot(enc)
	assert.Empty(t, roster[0].Conditions())
	assert.True(t, roster[1].HasCondition(condition.Blinded))
}

func TestExecute_Show(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	assert.Contains(t, exec(t, d, "show").Output, "Goblin")
	out := exec(t, d, "show 2").Output
	assert.Contains(t, out, "Ogre")
	assert.Contains(t, out, "59 / 59")
}

func TestExecute_Info(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	assert.Contains(t, exec(t, d, "info stu").Output, "Cannot move.")
	assert.Contains(t, exec(t, d, "info prone").Output, "No reference text loaded.")
	listing := exec(t, d, "info").Output
	for _, k := range condition.Kinds() {
		assert.Contains(t, listing, k.Abbreviation())
	}
}

func TestExecute_StatusAndHelp(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	res := exec(t, d, "status")
	assert.False(t, res.Redraw)
	status := res.Output
	assert.Contains(t, status, "Round: 1  Turn: 1/2")
	assert.Contains(t, status, "> Goblin")

	help := exec(t, d, "help").Output
	for _, c := range BuiltinCommands() {
		assert.Contains(t, help, c.Usage)
	}
}

func TestExecute_Quit(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	res := exec(t, d, "quit")
	assert.True(t, res.Quit)
	assert.Equal(t, "Encounter ended after 1 round.\n", res.Output)
}
