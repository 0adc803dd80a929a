package command

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/initiative/internal/game/combat"
	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/render"
)

// Result is the outcome of one executed command line.
type Result struct {
	// Output is the text to show the user; may be empty.
	Output string
	// Redraw is true when the command changed tracker state.
	Redraw bool
	// Quit is true when the user asked to end the encounter.
	Quit bool
}

// Dispatcher validates command lines and applies them to an encounter's tracker.
type Dispatcher struct {
	registry   *Registry
	encounter  *combat.Encounter
	conditions *condition.Registry
	renderer   *render.Renderer
	logger     *zap.Logger
}

// NewDispatcher creates a Dispatcher.
//
// Precondition: registry, encounter, renderer and logger must be non-nil.
// conditions may be nil, in which case info shows no reference text.
func NewDispatcher(registry *Registry, encounter *combat.Encounter, conditions *condition.Registry, renderer *render.Renderer, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		registry:   registry,
		encounter:  encounter,
		conditions: conditions,
		renderer:   renderer,
		logger:     logger,
	}
}

type handlerFunc func(d *Dispatcher, t *combat.Tracker, args []string) (Result, error)

var handlers = map[string]handlerFunc{
	HandlerNext:      (*Dispatcher).handleNext,
	HandlerAction:    spendHandler(combat.ActionStandard),
	HandlerBonus:     spendHandler(combat.ActionBonus),
	HandlerReaction:  spendHandler(combat.ActionReaction),
	HandlerDamage:    (*Dispatcher).handleDamage,
	HandlerHeal:      (*Dispatcher).handleHeal,
	HandlerCondition: (*Dispatcher).handleCondition,
	HandlerRemove:    (*Dispatcher).handleRemove,
	HandlerShow:      (*Dispatcher).handleShow,
	HandlerInfo:      (*Dispatcher).handleInfo,
	HandlerStatus:    (*Dispatcher).handleStatus,
	HandlerHelp:      (*Dispatcher).handleHelp,
	HandlerQuit:      (*Dispatcher).handleQuit,
}

// Execute parses line and runs the matching command with exclusive access to the tracker.
//
// Postcondition: Returns a zero Result for blank input. Input errors wrap one of the
// package sentinel errors and leave the tracker unchanged.
func (d *Dispatcher) Execute(line string) (Result, error) {
	parsed := Parse(line)
	if parsed.Command == "" {
		return Result{}, nil
	}
	cmd, ok := d.registry.Resolve(parsed.Command)
	if !ok {
		if cands := d.registry.Suggest(parsed.Command); len(cands) > 1 {
			return Result{}, fmt.Errorf("%w: %q is ambiguous (%s)", ErrUnknownCommand, parsed.Command, strings.Join(cands, ", "))
		}
		return Result{}, fmt.Errorf("%w: %q (try help)", ErrUnknownCommand, parsed.Command)
	}
	h, ok := handlers[cmd.Handler]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q has no handler", ErrUnknownCommand, cmd.Name)
	}

	var (
		res   Result
		err   error
		round int
		turn  int
	)
	d.encounter.Do(func(t *combat.Tracker) {
		res, err = h(d, t, parsed.Args)
		round, turn = t.Round(), t.Turn()
	})

	if err != nil {
		d.logger.Debug("command rejected",
			zap.String("command", cmd.Name),
			zap.Strings("args", parsed.Args),
			zap.Error(err),
		)
		return Result{}, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	d.logger.Debug("command executed",
		zap.String("command", cmd.Name),
		zap.Strings("args", parsed.Args),
		zap.Int("round", round+1),
		zap.Int("turn", turn+1),
	)
	return res, nil
}

func usageError(handler string) error {
	for _, c := range BuiltinCommands() {
		if c.Handler == handler {
			return fmt.Errorf("%w: usage: %s", ErrUsage, c.Usage)
		}
	}
	return ErrUsage
}

func (d *Dispatcher) handleNext(t *combat.Tracker, args []string) (Result, error) {
	if len(args) != 0 {
		return Result{}, usageError(HandlerNext)
	}
	ended := t.Current()
	change := t.AdvanceTurn()

	expired := make([]string, len(change.Expired))
	for i, k := range change.Expired {
		expired[i] = k.String()
	}
	d.logger.Info("turn advanced",
		zap.String("ended", ended.Name()),
		zap.String("current", t.Current().Name()),
		zap.Int("round", change.Round+1),
		zap.Strings("expired", expired),
	)

	var b strings.Builder
	for _, k := range expired {
		fmt.Fprintf(&b, "%s has ended on %s.\n", k, ended.Name())
	}
	if change.NewRound {
		fmt.Fprintf(&b, "Round %d begins.\n", change.Round+1)
	}
	fmt.Fprintf(&b, "It is %s's turn.\n", t.Current().Name())
	return Result{Output: b.String(), Redraw: true}, nil
}

func spendHandler(at combat.ActionType) handlerFunc {
	return func(d *Dispatcher, t *combat.Tracker, args []string) (Result, error) {
		if len(args) != 0 {
			return Result{}, fmt.Errorf("%w: %s takes no arguments", ErrUsage, at)
		}
		name := t.Current().Name()
		if !t.Use(at) {
			return Result{Output: fmt.Sprintf("%s has no %s left.\n", name, at)}, nil
		}
		left := t.Current().Actions().Remaining(at)
		return Result{Output: fmt.Sprintf("%s: %s used (%d left).\n", name, at, left), Redraw: true}, nil
	}
}

func (d *Dispatcher) handleDamage(t *combat.Tracker, args []string) (Result, error) {
	return d.changeHitPoints(t, args, HandlerDamage, 1)
}

func (d *Dispatcher) handleHeal(t *combat.Tracker, args []string) (Result, error) {
	return d.changeHitPoints(t, args, HandlerHeal, -1)
}

func (d *Dispatcher) changeHitPoints(t *combat.Tracker, args []string, handler string, sign int) (Result, error) {
	if len(args) != 2 {
		return Result{}, usageError(handler)
	}
	targets, err := ParseTargets(args[0], t.Len())
	if err != nil {
		return Result{}, err
	}
	amount, err := ParseAmount(args[1])
	if err != nil {
		return Result{}, err
	}

	wasDefeated := make([]bool, len(targets))
	for i, idx := range targets {
		wasDefeated[i] = t.Combatant(idx).Defeated()
	}
	t.Damage(targets, sign*amount)

	var b strings.Builder
	for i, idx := range targets {
		c := t.Combatant(idx)
		if sign > 0 {
			fmt.Fprintf(&b, "%s takes %d damage (%d / %d).\n", c.Name(), amount, c.HitPoints(), c.MaxHitPoints())
		} else {
			fmt.Fprintf(&b, "%s regains %d hit points (%d / %d).\n", c.Name(), amount, c.HitPoints(), c.MaxHitPoints())
		}
		switch {
		case c.Defeated() && !wasDefeated[i]:
			fmt.Fprintf(&b, "%s is defeated.\n", c.Name())
		case !c.Defeated() && wasDefeated[i]:
			fmt.Fprintf(&b, "%s is back in the fight.\n", c.Name())
		}
	}
	return Result{Output: b.String(), Redraw: true}, nil
}

func (d *Dispatcher) handleCondition(t *combat.Tracker, args []string) (Result, error) {
	if len(args) != 3 {
		return Result{}, usageError(HandlerCondition)
	}
	targets, err := ParseTargets(args[0], t.Len())
	if err != nil {
		return Result{}, err
	}
	kinds, err := ParseKinds(args[1])
	if err != nil {
		return Result{}, err
	}
	dur, err := ParseDuration(args[2])
	if err != nil {
		return Result{}, err
	}

	t.ApplyCondition(targets, kinds, dur)

	var b strings.Builder
	for _, idx := range targets {
		c := t.Combatant(idx)
		parts := make([]string, 0, len(kinds))
		for _, k := range kinds {
			if cond, ok := c.Condition(k); ok {
				parts = append(parts, cond.String())
			}
		}
		fmt.Fprintf(&b, "%s: %s\n", c.Name(), strings.Join(parts, ", "))
	}
	return Result{Output: b.String(), Redraw: true}, nil
}

func (d *Dispatcher) handleRemove(t *combat.Tracker, args []string) (Result, error) {
	if len(args) != 2 {
		return Result{}, usageError(HandlerRemove)
	}
	targets, err := ParseTargets(args[0], t.Len())
	if err != nil {
		return Result{}, err
	}
	kinds, err := ParseKinds(args[1])
	if err != nil {
		return Result{}, err
	}
	n := t.RemoveCondition(targets, kinds)
	noun := "conditions"
	if n == 1 {
		noun = "condition"
	}
	return Result{Output: fmt.Sprintf("Removed %d %s.\n", n, noun), Redraw: n > 0}, nil
}

func (d *Dispatcher) handleShow(t *combat.Tracker, args []string) (Result, error) {
	if len(args) > 1 {
		return Result{}, usageError(HandlerShow)
	}
	targets := []int{t.Turn()}
	if len(args) == 1 {
		var err error
		targets, err = ParseTargets(args[0], t.Len())
		if err != nil {
			return Result{}, err
		}
	}
	cards := make([]string, len(targets))
	for i, idx := range targets {
		cards[i] = d.renderer.Card(t.Combatant(idx))
	}
	return Result{Output: strings.Join(cards, "\n")}, nil
}

func (d *Dispatcher) handleInfo(_ *combat.Tracker, args []string) (Result, error) {
	if len(args) == 0 {
		var b strings.Builder
		for _, k := range condition.Kinds() {
			fmt.Fprintf(&b, "%s  %s\n", k.Abbreviation(), k)
		}
		return Result{Output: b.String()}, nil
	}
	if len(args) != 1 {
		return Result{}, usageError(HandlerInfo)
	}
	kinds, err := ParseKinds(args[0])
	if err != nil {
		return Result{}, err
	}
	var b strings.Builder
	for _, k := range kinds {
		var def *condition.Def
		if d.conditions != nil {
			def, _ = d.conditions.Get(k)
		}
		b.WriteString(d.renderer.ConditionInfo(k, def))
	}
	return Result{Output: b.String()}, nil
}

func (d *Dispatcher) handleStatus(t *combat.Tracker, _ []string) (Result, error) {
	return Result{Output: d.renderer.Tracker(t.Round(), t.Turn(), t.Combatants())}, nil
}

func (d *Dispatcher) handleHelp(_ *combat.Tracker, _ []string) (Result, error) {
	byCat := d.registry.CommandsByCategory()
	cats := make([]string, 0, len(byCat))
	for c := range byCat {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	var b strings.Builder
	for _, cat := range cats {
		fmt.Fprintf(&b, "%s:\n", strings.ToUpper(cat[:1])+cat[1:])
		for _, cmd := range byCat[cat] {
			usage := cmd.Usage
			if len(cmd.Aliases) > 0 {
				usage += " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			fmt.Fprintf(&b, "  %s\n      %s\n", usage, cmd.Help)
		}
	}
	return Result{Output: b.String()}, nil
}

func (d *Dispatcher) handleQuit(t *combat.Tracker, _ []string) (Result, error) {
	rounds := t.Round() + 1
	noun := "rounds"
	if rounds == 1 {
		noun = "round"
	}
	return Result{Output: fmt.Sprintf("Encounter ended after %d %s.\n", rounds, noun), Quit: true}, nil
}
