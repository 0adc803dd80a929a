package condition

// Condition is one status effect applied to a combatant.
type Condition struct {
	Kind     Kind
	Duration Duration
}

// String renders the condition as "Stunned (2 rounds)".
func (c Condition) String() string {
	return c.Kind.String() + " (" + c.Duration.String() + ")"
}

// Set tracks the conditions active on one combatant, in application order.
// It is not safe for concurrent use; the caller must serialise access.
//
// Invariant: no two entries share a Kind.
type Set struct {
	conditions []Condition
}

// Apply adds c, or, if a condition of the same kind is already active, keeps
// whichever duration is strictly longer.
//
// Postcondition: Has(c.Kind) is true; an existing duration is never shortened.
// Returns true if the set changed.
func (s *Set) Apply(c Condition) bool {
	for i := range s.conditions {
		if s.conditions[i].Kind != c.Kind {
			continue
		}
		if c.Duration.Longer(s.conditions[i].Duration) {
			s.conditions[i].Duration = c.Duration
			return true
		}
		return false
	}
	s.conditions = append(s.conditions, c)
	return true
}

// Remove deletes the condition of kind k. Returns false if it was not present.
//
// Postcondition: Has(k) is false.
func (s *Set) Remove(k Kind) bool {
	for i := range s.conditions {
		if s.conditions[i].Kind == k {
			s.conditions = append(s.conditions[:i], s.conditions[i+1:]...)
			return true
		}
	}
	return false
}

// Tick decrements every condition by one round, dropping the ones that expire.
//
// Postcondition: For every kind in the returned slice, Has(kind) is false.
// Surviving conditions keep their relative order.
func (s *Set) Tick() []Kind {
	var expired []Kind
	kept := s.conditions[:0]
	for _, c := range s.conditions {
		next, ok := c.Duration.Decrement()
		if !ok {
			expired = append(expired, c.Kind)
			continue
		}
		c.Duration = next
		kept = append(kept, c)
	}
	s.conditions = kept
	return expired
}

// Has reports whether a condition of kind k is active.
func (s *Set) Has(k Kind) bool {
	_, ok := s.Get(k)
	return ok
}

// Get returns the active condition of kind k.
func (s *Set) Get(k Kind) (Condition, bool) {
	for _, c := range s.conditions {
		if c.Kind == k {
			return c, true
		}
	}
	return Condition{}, false
}

// Len returns the number of active conditions.
func (s *Set) Len() int { return len(s.conditions) }

// All returns a copy of the active conditions in application order.
func (s *Set) All() []Condition {
	out := make([]Condition, len(s.conditions))
	copy(out, s.conditions)
	return out
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() Set {
	return Set{conditions: s.All()}
}
