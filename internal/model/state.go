package model

// State is the full persisted document: the flat inventory and all sets.
// Field names match the serialized wire format.
type State struct {
	Inventory []Instrument `json:"inventory"`
	Sets      []Set        `json:"sets"`
}

// Clone returns a deep copy of the state. Mutations of the copy never affect
// the original, which is what makes copy-on-write snapshots safe to hand out.
func (s *State) Clone() *State {
	c := &State{
		Inventory: make([]Instrument, len(s.Inventory)),
		Sets:      make([]Set, len(s.Sets)),
	}
	copy(c.Inventory, s.Inventory)
	for i, set := range s.Sets {
		c.Sets[i] = set
		c.Sets[i].Instruments = make([]SetInstrument, len(set.Instruments))
		copy(c.Sets[i].Instruments, set.Instruments)
	}
	return c
}

// Instrument returns the inventory row with the given ID, or nil.
func (s *State) Instrument(id string) *Instrument {
	for i := range s.Inventory {
		if s.Inventory[i].ID == id {
			return &s.Inventory[i]
		}
	}
	return nil
}

// Set returns the set with the given ID, or nil.
func (s *State) Set(id string) *Set {
	for i := range s.Sets {
		if s.Sets[i].ID == id {
			return &s.Sets[i]
		}
	}
	return nil
}
