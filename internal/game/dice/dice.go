// Package dice parses and rolls the dice expressions found in creature stat
// blocks, e.g. "7d10+14".
package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Expression is a parsed "NdS+M" dice expression.
//
// Invariant: Count >= 1 and Sides >= 2.
type Expression struct {
	Raw      string
	Count    int
	Sides    int
	Modifier int
}

// D20 is the single twenty-sided die used for initiative.
var D20 = Expression{Raw: "1d20", Count: 1, Sides: 20}

var exprPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:([+-])(\d+))?$`)

// Parse parses expressions of the forms "d20", "2d6", "7d10+14" and "1d4-1".
// Whitespace is ignored.
//
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	compact := strings.ToLower(strings.Join(strings.Fields(expr), ""))
	m := exprPattern.FindStringSubmatch(compact)
	if m == nil {
		return Expression{}, fmt.Errorf("dice: malformed expression %q", expr)
	}

	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
		}
		count = n
	}
	if count < 1 {
		return Expression{}, fmt.Errorf("dice: die count in %q must be >= 1", expr)
	}

	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", expr, err)
	}
	if sides < 2 {
		return Expression{}, fmt.Errorf("dice: die sides in %q must be >= 2", expr)
	}

	mod := 0
	if m[4] != "" {
		mod, err = strconv.Atoi(m[4])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
		if m[3] == "-" {
			mod = -mod
		}
	}

	return Expression{Raw: strings.TrimSpace(expr), Count: count, Sides: sides, Modifier: mod}, nil
}

// String renders the expression in canonical form.
func (e Expression) String() string {
	if e.Modifier == 0 {
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
	return fmt.Sprintf("%dd%d%+d", e.Count, e.Sides, e.Modifier)
}

// Result is the audit trail of one evaluated expression.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type Result struct {
	Expression Expression
	Dice       []int
}

// Total returns the sum of the dice plus the modifier.
func (r Result) Total() int {
	total := r.Expression.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the result as "2d6+3 → [4 5] = 12".
func (r Result) String() string {
	return fmt.Sprintf("%s → %v = %d", r.Expression, r.Dice, r.Total())
}

// Roll evaluates e using src.
//
// Precondition: e must come from Parse; src must be non-nil.
// Postcondition: len(result.Dice) == e.Count and every die is in [1, e.Sides].
func Roll(e Expression, src Source) Result {
	rolled := make([]int, e.Count)
	for i := range rolled {
		rolled[i] = src.Intn(e.Sides) + 1
	}
	return Result{Expression: e, Dice: rolled}
}
