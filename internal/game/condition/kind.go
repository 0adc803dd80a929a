// Package condition models status conditions, their durations, and the
// per-combatant set of active conditions.
package condition

import (
	"fmt"
	"strings"
)

// Kind is one of the fixed categories of status effect.
// The zero value is Blinded.
type Kind int

const (
	Blinded Kind = iota
	Charmed
	Deafened
	Exhaustion
	Frightened
	Grappled
	Incapacitated
	Invisible
	Paralyzed
	Petrified
	Poisoned
	Prone
	Restrained
	Stunned
	Unconscious
)

var kindNames = [...]string{
	Blinded:       "Blinded",
	Charmed:       "Charmed",
	Deafened:      "Deafened",
	Exhaustion:    "Exhaustion",
	Frightened:    "Frightened",
	Grappled:      "Grappled",
	Incapacitated: "Incapacitated",
	Invisible:     "Invisible",
	Paralyzed:     "Paralyzed",
	Petrified:     "Petrified",
	Poisoned:      "Poisoned",
	Prone:         "Prone",
	Restrained:    "Restrained",
	Stunned:       "Stunned",
	Unconscious:   "Unconscious",
}

var kindAbbreviations = [...]string{
	Blinded:       "BLI",
	Charmed:       "CHA",
	Deafened:      "DEA",
	Exhaustion:    "EXH",
	Frightened:    "FRI",
	Grappled:      "GRA",
	Incapacitated: "INC",
	Invisible:     "INV",
	Paralyzed:     "PAR",
	Petrified:     "PET",
	Poisoned:      "POI",
	Prone:         "PRO",
	Restrained:    "RES",
	Stunned:       "STU",
	Unconscious:   "UNC",
}

// Kinds returns every Kind in declaration order.
//
// Postcondition: The returned slice is a new allocation of length 15.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// String returns the display name, e.g. "Stunned".
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Abbreviation returns the unique three-letter code used in compact displays.
func (k Kind) Abbreviation() string {
	if !k.Valid() {
		return "???"
	}
	return kindAbbreviations[k]
}

// ID returns the lowercase identifier used in content files, e.g. "stunned".
func (k Kind) ID() string {
	return strings.ToLower(k.String())
}

// ParseKind resolves a name or abbreviation, case-insensitively.
//
// Postcondition: Returns (kind, nil) on a match, or an error naming the input.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for i := range kindNames {
		if strings.EqualFold(s, kindNames[i]) || strings.EqualFold(s, kindAbbreviations[i]) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown condition %q", s)
}
