package model

import "testing"

func TestCloneIsDeep(t *testing.T) {
	state := &State{
		Inventory: []Instrument{{ID: "a", Name: "Scalpel", Quantity: 1}},
		Sets: []Set{{ID: "s", Name: "Suturing", Instruments: []SetInstrument{
			{InstrumentID: "a", Quantity: 1},
		}}},
	}

	clone := state.Clone()
	clone.Inventory[0].Quantity = 99
	clone.Sets[0].Instruments[0].Quantity = 99
	clone.Sets[0].Name = "Changed"

	if state.Inventory[0].Quantity != 1 {
		t.Error("clone shares inventory backing array")
	}
	if state.Sets[0].Instruments[0].Quantity != 1 {
		t.Error("clone shares set allocation backing array")
	}
	if state.Sets[0].Name != "Suturing" {
		t.Error("clone shares set values")
	}
}

func TestStateLookups(t *testing.T) {
	state := &State{
		Inventory: []Instrument{{ID: "a"}, {ID: "b"}},
		Sets:      []Set{{ID: "s"}},
	}

	if inst := state.Instrument("b"); inst == nil || inst.ID != "b" {
		t.Error("expected to find instrument b")
	}
	if state.Instrument("x") != nil {
		t.Error("expected nil for unknown instrument")
	}
	if set := state.Set("s"); set == nil {
		t.Error("expected to find set s")
	}
	if state.Set("x") != nil {
		t.Error("expected nil for unknown set")
	}
}

func TestSetAllocation(t *testing.T) {
	set := &Set{Instruments: []SetInstrument{{InstrumentID: "a", Quantity: 2}}}

	if alloc := set.Allocation("a"); alloc == nil || alloc.Quantity != 2 {
		t.Error("expected allocation for a")
	}
	if set.Allocation("b") != nil {
		t.Error("expected nil for unreferenced instrument")
	}
}

func TestValidIcon(t *testing.T) {
	if !ValidIcon(DefaultIcon) {
		t.Errorf("default icon %q should be valid", DefaultIcon)
	}
	if ValidIcon("rocket") {
		t.Error("unexpected icon accepted")
	}
}
