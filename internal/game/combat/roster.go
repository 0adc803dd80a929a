package combat

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/initiative/internal/game/dice"
	"github.com/cory-johannsen/initiative/internal/game/monster"
)

// Party is the on-disk list of player characters.
type Party struct {
	Players []PlayerKind `yaml:"players"`
}

// Validate checks every player entry.
//
// Postcondition: Returns nil iff every player has a name, MaxHP >= 1 and AC >= 0.
func (p Party) Validate() error {
	for i, pl := range p.Players {
		if pl.Name == "" {
			return fmt.Errorf("player %d: name must not be empty", i)
		}
		if pl.MaxHP < 1 {
			return fmt.Errorf("player %q: max_hp must be >= 1", pl.Name)
		}
		if pl.AC < 0 {
			return fmt.Errorf("player %q: ac must be >= 0", pl.Name)
		}
	}
	return nil
}

// LoadPartyFromBytes parses and validates a party document.
func LoadPartyFromBytes(data []byte) (Party, error) {
	var p Party
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Party{}, fmt.Errorf("parsing party YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Party{}, err
	}
	return p, nil
}

// LoadParty reads the party file at path.
func LoadParty(path string) (Party, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Party{}, fmt.Errorf("reading party file %q: %w", path, err)
	}
	p, err := LoadPartyFromBytes(data)
	if err != nil {
		return Party{}, fmt.Errorf("loading %q: %w", path, err)
	}
	return p, nil
}

// RosterOptions controls how BuildRoster prepares combatants.
type RosterOptions struct {
	// RollHitPoints rolls each monster's hit_points_roll instead of using the fixed value.
	RollHitPoints bool
	// RollInitiative rolls d20 + modifier for everyone and orders the roster highest first.
	RollInitiative bool
}

// BuildRoster creates combatants for the given monsters followed by the party.
//
// Precondition: r must be non-nil when either option is set.
// Postcondition: Without RollInitiative the order is monsters then players, as given.
func BuildRoster(monsters []*monster.Monster, party []PlayerKind, r *dice.Roller, opts RosterOptions) []*Combatant {
	roster := make([]*Combatant, 0, len(monsters)+len(party))
	for _, m := range monsters {
		kind := MonsterKind{Monster: m}
		if opts.RollHitPoints {
			kind.HitPoints = m.RollHitPoints(r)
		}
		roster = append(roster, NewCombatant(kind))
	}
	for _, p := range party {
		roster = append(roster, NewCombatant(p))
	}
	if opts.RollInitiative {
		RollInitiative(roster, r)
		SortByInitiative(roster)
	}
	return roster
}
