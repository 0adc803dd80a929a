package combat

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Encounter pairs a Tracker with the lock that serializes access to it.
type Encounter struct {
	// ID uniquely identifies the encounter within its Engine.
	ID string

	mu      sync.Mutex
	tracker *Tracker
}

// Do runs fn with exclusive access to the encounter's Tracker.
//
// Precondition: fn must not retain the *Tracker after returning.
func (enc *Encounter) Do(fn func(t *Tracker)) {
	enc.mu.Lock()
	defer enc.mu.Unlock()
	fn(enc.tracker)
}

// Engine manages all active encounters, keyed by ID.
// All methods are safe for concurrent use.
type Engine struct {
	mu            sync.RWMutex
	encounters    map[string]*Encounter
	maxCombatants int
	logger        *zap.Logger
}

// NewEngine creates an empty Engine.
//
// Precondition: maxCombatants must be >= 1; logger must be non-nil.
// Postcondition: Returns a non-nil Engine ready for use.
func NewEngine(maxCombatants int, logger *zap.Logger) *Engine {
	return &Engine{
		encounters:    make(map[string]*Encounter),
		maxCombatants: maxCombatants,
		logger:        logger,
	}
}

// Start begins a new encounter with the given roster, in the given order.
//
// Postcondition: Returns the new Encounter, or an error if the roster is empty,
// exceeds the configured maximum, or contains a nil entry.
func (e *Engine) Start(combatants []*Combatant) (*Encounter, error) {
	if len(combatants) == 0 {
		return nil, fmt.Errorf("encounter roster must not be empty")
	}
	if len(combatants) > e.maxCombatants {
		return nil, fmt.Errorf("encounter roster has %d combatants, maximum is %d", len(combatants), e.maxCombatants)
	}
	for i, c := range combatants {
		if c == nil {
			return nil, fmt.Errorf("encounter roster entry %d is nil", i)
		}
	}

	enc := &Encounter{
		ID:      uuid.New().String(),
		tracker: NewTracker(combatants),
	}

	e.mu.Lock()
	e.encounters[enc.ID] = enc
	e.mu.Unlock()

	e.logger.Info("encounter started",
		zap.String("encounter_id", enc.ID),
		zap.Int("combatants", len(combatants)),
	)
	return enc, nil
}

// Get returns the encounter with the given ID.
//
// Postcondition: Returns (encounter, true) if found, or (nil, false) otherwise.
func (e *Engine) Get(id string) (*Encounter, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	enc, ok := e.encounters[id]
	return enc, ok
}

// End removes the encounter with the given ID.
//
// Postcondition: Returns false if no such encounter exists.
func (e *Engine) End(id string) bool {
	e.mu.Lock()
	enc, ok := e.encounters[id]
	delete(e.encounters, id)
	e.mu.Unlock()
	if !ok {
		return false
	}

	var rounds int
	enc.Do(func(t *Tracker) { rounds = t.Round() + 1 })
	e.logger.Info("encounter ended",
		zap.String("encounter_id", id),
		zap.Int("rounds", rounds),
	)
	return true
}

// IDs returns the IDs of all active encounters in sorted order.
func (e *Engine) IDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, len(e.encounters))
	for id := range e.encounters {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Shutdown ends every active encounter.
//
// Postcondition: IDs returns an empty slice; the count of encounters ended is returned.
func (e *Engine) Shutdown() int {
	n := 0
	for _, id := range e.IDs() {
		if e.End(id) {
			n++
		}
	}
	return n
}
