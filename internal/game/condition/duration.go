package condition

import (
	"fmt"
	"math"
)

// Unit tags which representation a Duration uses.
type Unit int

const (
	// UnitUntilNextTurn lasts through the end of the bearer's next turn.
	UnitUntilNextTurn Unit = iota
	// UnitRounds counts down an exact number of rounds.
	UnitRounds
	// UnitMinutes is ten rounds per minute, kept distinct for display.
	UnitMinutes
	// UnitForever never expires by ticking.
	UnitForever
)

// String returns the unit label used by pickers and help text.
func (u Unit) String() string {
	switch u {
	case UnitUntilNextTurn:
		return "until end of next turn"
	case UnitRounds:
		return "rounds"
	case UnitMinutes:
		return "minutes"
	case UnitForever:
		return "forever"
	default:
		return "unknown"
	}
}

// roundsPerMinute converts minute durations into rounds.
const roundsPerMinute = 10

// untilNextTurnRounds is one round to finish the current turn and one for the next.
const untilNextTurnRounds = 2

// Duration is how long a condition lasts.
// The zero value is UntilNextTurn.
//
// Invariant: for UnitRounds and UnitMinutes, n >= 1.
type Duration struct {
	unit Unit
	n    uint32
}

// UntilNextTurn returns a duration lasting until the end of the bearer's next turn.
func UntilNextTurn() Duration { return Duration{unit: UnitUntilNextTurn} }

// Forever returns a duration that only ends by explicit removal.
func Forever() Duration { return Duration{unit: UnitForever} }

// Rounds returns an n-round duration.
//
// Precondition: n >= 1. Panics otherwise.
func Rounds(n uint32) Duration {
	if n == 0 {
		panic("condition: Rounds called with n == 0")
	}
	return Duration{unit: UnitRounds, n: n}
}

// Minutes returns an n-minute duration.
//
// Precondition: 1 <= n <= math.MaxUint32/10. Panics otherwise.
func Minutes(n uint32) Duration {
	if n == 0 {
		panic("condition: Minutes called with n == 0")
	}
	if n > math.MaxUint32/roundsPerMinute {
		panic(fmt.Sprintf("condition: Minutes called with n == %d, overflows rounds", n))
	}
	return Duration{unit: UnitMinutes, n: n}
}

// NewDuration builds a Duration from user-supplied values. n is ignored for
// UnitUntilNextTurn and UnitForever.
//
// Postcondition: Returns an error if unit is unknown, a counted unit has n == 0,
// or a minute count would overflow RoundsLeft.
func NewDuration(unit Unit, n uint32) (Duration, error) {
	switch unit {
	case UnitUntilNextTurn:
		return UntilNextTurn(), nil
	case UnitForever:
		return Forever(), nil
	case UnitRounds, UnitMinutes:
		if n == 0 {
			return Duration{}, fmt.Errorf("%s duration must be at least 1", unit)
		}
		if unit == UnitMinutes && n > math.MaxUint32/roundsPerMinute {
			return Duration{}, fmt.Errorf("minutes duration must be at most %d", math.MaxUint32/roundsPerMinute)
		}
		return Duration{unit: unit, n: n}, nil
	default:
		return Duration{}, fmt.Errorf("unknown duration unit %d", int(unit))
	}
}

// Unit returns the representation tag.
func (d Duration) Unit() Unit { return d.unit }

// Amount returns the stored count for rounds and minutes, 0 otherwise.
func (d Duration) Amount() uint32 { return d.n }

// RoundsLeft returns the rounds remaining. ok is false for Forever.
func (d Duration) RoundsLeft() (rounds uint32, ok bool) {
	switch d.unit {
	case UnitForever:
		return 0, false
	case UnitRounds:
		return d.n, true
	case UnitMinutes:
		return d.n * roundsPerMinute, true
	default:
		return untilNextTurnRounds, true
	}
}

// Decrement returns the duration after one round elapses. ok is false when
// the condition has expired and must be removed.
//
// Postcondition: Forever yields (Forever, true). Any surviving finite duration
// is normalized to UnitRounds.
func (d Duration) Decrement() (next Duration, ok bool) {
	left, finite := d.RoundsLeft()
	if !finite {
		return d, true
	}
	if left <= 1 {
		return Duration{}, false
	}
	return Rounds(left - 1), true
}

// Longer reports whether d lasts strictly longer than other.
// Forever is longer than any finite duration; finite durations compare by RoundsLeft.
func (d Duration) Longer(other Duration) bool {
	dl, dFinite := d.RoundsLeft()
	ol, oFinite := other.RoundsLeft()
	switch {
	case !dFinite:
		return oFinite
	case !oFinite:
		return false
	default:
		return dl > ol
	}
}

// String renders the duration, e.g. "1 round", "3 minutes", "Forever".
func (d Duration) String() string {
	switch d.unit {
	case UnitForever:
		return "Forever"
	case UnitRounds:
		return plural(d.n, "round")
	case UnitMinutes:
		return plural(d.n, "minute")
	default:
		return plural(untilNextTurnRounds, "round")
	}
}

func plural(n uint32, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
