package store

import "github.com/matejv/surgiset/internal/model"

// Snapshot returns a deep copy of the current state. Later mutations never
// affect a snapshot already handed out.
func (s *Store) Snapshot() *model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Instrument returns a copy of the inventory row with the given ID.
func (s *Store) Instrument(id string) (model.Instrument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inst := s.state.Instrument(id); inst != nil {
		return *inst, true
	}
	return model.Instrument{}, false
}

// Set returns a copy of the set with the given ID.
func (s *Store) Set(id string) (model.Set, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.state.Set(id)
	if set == nil {
		return model.Set{}, false
	}
	out := *set
	out.Instruments = append([]model.SetInstrument{}, set.Instruments...)
	return out, true
}

// Inventory returns a copy of the inventory rows in their current order.
func (s *Store) Inventory() []model.Instrument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Instrument{}, s.state.Inventory...)
}

// Sets returns a copy of the sets in their current order.
func (s *Store) Sets() []model.Set {
	return s.Snapshot().Sets
}

// UnallocatedInstruments returns inventory rows that no set references and
// that still have shelf quantity. This feeds the audit document's
// Miscellaneous section and the purchased-instruments view.
func (s *Store) UnallocatedInstruments() []model.Instrument {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := make(map[string]bool)
	for _, set := range s.state.Sets {
		for _, alloc := range set.Instruments {
			used[alloc.InstrumentID] = true
		}
	}

	var out []model.Instrument
	for _, inst := range s.state.Inventory {
		if !used[inst.ID] && inst.Quantity > 0 {
			out = append(out, inst)
		}
	}
	return out
}

// TotalAllocated returns the summed set allocations for an instrument.
func (s *Store) TotalAllocated(instrumentID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, set := range s.state.Sets {
		for _, alloc := range set.Instruments {
			if alloc.InstrumentID == instrumentID {
				total += alloc.Quantity
			}
		}
	}
	return total
}
