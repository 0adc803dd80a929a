package command

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cory-johannsen/initiative/internal/game/condition"
)

// Sentinel errors for command input validation; check with errors.Is.
var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrUsage            = errors.New("wrong number of arguments")
	ErrInvalidTarget    = errors.New("invalid target")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDuration  = errors.New("invalid duration")
	ErrUnknownCondition = errors.New("unknown condition")
)

// ParseTargets converts a 1-based target list into sorted, de-duplicated
// 0-based indices. Accepted forms are "2", "1,3", "1-3" and "all".
//
// Precondition: n is the roster size.
// Postcondition: Every returned index is in [0, n), or the error wraps ErrInvalidTarget.
func ParseTargets(s string, n int) ([]int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "all" || s == "*" {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi, err := parseTargetRange(part)
		if err != nil {
			return nil, err
		}
		if lo < 1 || hi > n {
			return nil, fmt.Errorf("%w: %q is outside 1-%d", ErrInvalidTarget, part, n)
		}
		for i := lo; i <= hi; i++ {
			seen[i-1] = true
		}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}

func parseTargetRange(part string) (lo, hi int, err error) {
	if part == "" {
		return 0, 0, fmt.Errorf("%w: empty entry", ErrInvalidTarget)
	}
	from, to, isRange := strings.Cut(part, "-")
	lo, err = strconv.Atoi(from)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTarget, part)
	}
	if !isRange {
		return lo, lo, nil
	}
	hi, err = strconv.Atoi(to)
	if err != nil || hi < lo {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTarget, part)
	}
	return lo, hi, nil
}

// MaxAmount is the largest hit point amount a single command accepts.
const MaxAmount = 1_000_000

// ParseAmount parses a non-negative hit point amount.
//
// Postcondition: Returns an amount in [0, MaxAmount], or an error wrapping ErrInvalidAmount.
func ParseAmount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d must not be negative", ErrInvalidAmount, n)
	}
	if n > MaxAmount {
		return 0, fmt.Errorf("%w: %d exceeds %d", ErrInvalidAmount, n, MaxAmount)
	}
	return n, nil
}

// ParseKinds parses a comma-separated list of condition names or abbreviations.
//
// Postcondition: Returns at least one distinct Kind in input order, or an error
// wrapping ErrUnknownCondition.
func ParseKinds(s string) ([]condition.Kind, error) {
	var out []condition.Kind
	seen := make(map[condition.Kind]bool)
	for _, part := range strings.Split(s, ",") {
		k, err := condition.ParseKind(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCondition, strings.TrimSpace(part))
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out, nil
}

// ParseDuration parses "next", "<n>r", "<n>m" or "forever". A bare number means rounds.
//
// Postcondition: Returns a valid Duration or an error wrapping ErrInvalidDuration.
func ParseDuration(s string) (condition.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "next", "nt":
		return condition.UntilNextTurn(), nil
	case "forever", "f", "inf":
		return condition.Forever(), nil
	}

	unit := condition.UnitRounds
	digits := s
	switch {
	case strings.HasSuffix(s, "r"):
		digits = strings.TrimSuffix(s, "r")
	case strings.HasSuffix(s, "m"):
		unit = condition.UnitMinutes
		digits = strings.TrimSuffix(s, "m")
	}
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return condition.Duration{}, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	d, err := condition.NewDuration(unit, uint32(n))
	if err != nil {
		return condition.Duration{}, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}
	return d, nil
}
