// Package store implements the inventory/set reconciliation store: the flat
// instrument inventory, the procedural sets that allocate from it, and every
// operation that moves quantity between the two while preserving the
// conservation invariant (allocation moves units, it never creates or
// destroys them).
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/matejv/surgiset/internal/model"
	"github.com/matejv/surgiset/internal/storage"
)

// Store owns the inventory and sets. Every mutation clones the whole state,
// applies the change to the clone, and swaps it in atomically, so snapshots
// handed out earlier are never affected (copy-on-write). Mutations whose
// preconditions fail leave the state untouched and surface no error: the
// store never fails for well-typed input.
type Store struct {
	mu    sync.Mutex
	state *model.State

	backend   storage.Backend
	namespace string

	// pending carries the newest serialized state to the persist goroutine.
	// Capacity 1 with drop-stale semantics: callers never block and only the
	// latest snapshot is written.
	pending chan []byte
	done    chan struct{}
}

// New creates a store with the given initial state and starts the background
// persist goroutine. A nil state starts empty.
func New(backend storage.Backend, initial *model.State) *Store {
	if initial == nil {
		initial = &model.State{}
	}
	s := &Store{
		state:     initial,
		backend:   backend,
		namespace: storage.InventoryNamespace,
		pending:   make(chan []byte, 1),
		done:      make(chan struct{}),
	}
	go s.persistLoop()
	return s
}

// Open restores the persisted state from the backend and returns a running
// store. On first run (nothing persisted yet) the store is seeded with two
// starter sets.
func Open(ctx context.Context, backend storage.Backend) (*Store, error) {
	data, err := backend.Load(ctx, storage.InventoryNamespace)
	if err != nil {
		return nil, fmt.Errorf("loading inventory state: %w", err)
	}

	if data == nil {
		return New(backend, seedState()), nil
	}

	var state model.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decoding inventory state: %w", err)
	}
	return New(backend, &state), nil
}

// seedState returns the first-run state: empty inventory plus two example
// sets so the sets screen is not empty on a fresh install.
func seedState() *model.State {
	return &model.State{
		Sets: []model.Set{
			{
				ID:          uuid.NewString(),
				Name:        "Rhinoplasty Set 1",
				Description: "Standard open rhino set",
				Icon:        model.DefaultIcon,
				Instruments: []model.SetInstrument{},
			},
			{
				ID:          uuid.NewString(),
				Name:        "Basic Suturing",
				Description: "For minor lacerations",
				Icon:        model.DefaultIcon,
				Instruments: []model.SetInstrument{},
			},
		},
	}
}

// Close flushes any pending write and stops the persist goroutine. The
// backend itself is not closed; the caller owns it.
func (s *Store) Close() {
	close(s.pending)
	<-s.done
}

// persistLoop writes serialized states handed over by mutations. Failures
// are logged and the session continues: in-memory state stays authoritative.
func (s *Store) persistLoop() {
	defer close(s.done)
	for data := range s.pending {
		if err := s.backend.Save(context.Background(), s.namespace, data); err != nil {
			slog.Error("persisting inventory state", "error", err)
		}
	}
}

// enqueuePersist hands the newest state to the persist goroutine without
// blocking, replacing any not-yet-written older snapshot.
func (s *Store) enqueuePersist(data []byte) {
	for {
		select {
		case s.pending <- data:
			return
		default:
		}
		select {
		case <-s.pending:
		default:
		}
	}
}

// mutate runs fn against a clone of the current state. If fn reports a
// change, the clone replaces the state and is queued for persistence;
// otherwise the state is left byte-for-byte untouched.
func (s *Store) mutate(fn func(st *model.State) bool) {
	s.mu.Lock()
	next := s.state.Clone()
	if !fn(next) {
		s.mu.Unlock()
		return
	}
	s.state = next
	s.mu.Unlock()

	data, err := json.Marshal(next)
	if err != nil {
		slog.Error("encoding inventory state", "error", err)
		return
	}
	s.enqueuePersist(data)
}

// InstrumentDraft is the input to AddInstrument. Quantity is how many
// independent rows to create, not a quantity stored on one row.
type InstrumentDraft struct {
	Name        string
	Description string
	Image       string
	Quantity    int
	IsWishlist  bool
}

// AddInstrument fans the draft out into Quantity (minimum 1) new inventory
// rows, each with a fresh ID and quantity 1. Name validation is the caller's
// job; an empty name is accepted here.
func (s *Store) AddInstrument(draft InstrumentDraft) {
	count := draft.Quantity
	if count < 1 {
		count = 1
	}
	s.mutate(func(st *model.State) bool {
		for i := 0; i < count; i++ {
			st.Inventory = append(st.Inventory, model.Instrument{
				ID:          uuid.NewString(),
				Name:        draft.Name,
				Description: draft.Description,
				Image:       draft.Image,
				Quantity:    1,
				IsWishlist:  draft.IsWishlist,
			})
		}
		return true
	})
}

// CreateSet appends a new empty set. An empty icon defaults to
// model.DefaultIcon.
func (s *Store) CreateSet(name, description, icon string) {
	if icon == "" {
		icon = model.DefaultIcon
	}
	s.mutate(func(st *model.State) bool {
		st.Sets = append(st.Sets, model.Set{
			ID:          uuid.NewString(),
			Name:        name,
			Description: description,
			Icon:        icon,
			Instruments: []model.SetInstrument{},
		})
		return true
	})
}

// SetUpdate is a partial update for a set; nil fields are left unchanged.
type SetUpdate struct {
	Name        *string
	Description *string
	Icon        *string
}

// UpdateSet merges the update onto the matching set. Unknown IDs are a
// silent no-op.
func (s *Store) UpdateSet(setID string, update SetUpdate) {
	s.mutate(func(st *model.State) bool {
		set := st.Set(setID)
		if set == nil {
			return false
		}
		if update.Name != nil {
			set.Name = *update.Name
		}
		if update.Description != nil {
			set.Description = *update.Description
		}
		if update.Icon != nil {
			set.Icon = *update.Icon
		}
		return true
	})
}

// AddInstrumentToSet moves qty units from the instrument's shelf quantity
// into the set's allocation for it, merging with an existing allocation or
// appending a new one at the end of the set's order. If the instrument or
// set is missing, or the shelf quantity is insufficient, nothing changes.
func (s *Store) AddInstrumentToSet(setID, instrumentID string, qty int) {
	if qty <= 0 {
		return
	}
	s.mutate(func(st *model.State) bool {
		inst := st.Instrument(instrumentID)
		if inst == nil || inst.Quantity < qty {
			return false
		}
		set := st.Set(setID)
		if set == nil {
			return false
		}

		inst.Quantity -= qty
		if alloc := set.Allocation(instrumentID); alloc != nil {
			alloc.Quantity += qty
		} else {
			set.Instruments = append(set.Instruments, model.SetInstrument{
				InstrumentID: instrumentID,
				Quantity:     qty,
			})
		}
		return true
	})
}

// RemoveInstrumentFromSet moves qty units from the set's allocation back to
// the instrument's shelf quantity. Allocation rows that reach zero are
// removed from the set's order. If the instrument row was deleted out from
// under the set, the returned units are dropped: there is no row left to
// credit.
func (s *Store) RemoveInstrumentFromSet(setID, instrumentID string, qty int) {
	if qty <= 0 {
		return
	}
	s.mutate(func(st *model.State) bool {
		set := st.Set(setID)
		if set == nil {
			return false
		}
		alloc := set.Allocation(instrumentID)
		if alloc == nil || alloc.Quantity < qty {
			return false
		}

		alloc.Quantity -= qty
		if alloc.Quantity == 0 {
			set.Instruments = removeAllocation(set.Instruments, instrumentID)
		}
		if inst := st.Instrument(instrumentID); inst != nil {
			inst.Quantity += qty
		}
		return true
	})
}

// ReturnAllToInventory credits every allocation in the set back to its
// instrument row (allocations of deleted instruments are dropped) and
// empties the set.
func (s *Store) ReturnAllToInventory(setID string) {
	s.mutate(func(st *model.State) bool {
		set := st.Set(setID)
		if set == nil {
			return false
		}
		returnAllocations(st, set)
		set.Instruments = []model.SetInstrument{}
		return true
	})
}

// DeleteSet returns all of the set's allocations to inventory and removes
// the set. Unknown IDs are a silent no-op, so a second call does nothing.
func (s *Store) DeleteSet(setID string) {
	s.mutate(func(st *model.State) bool {
		set := st.Set(setID)
		if set == nil {
			return false
		}
		returnAllocations(st, set)
		for i := range st.Sets {
			if st.Sets[i].ID == setID {
				st.Sets = append(st.Sets[:i], st.Sets[i+1:]...)
				break
			}
		}
		return true
	})
}

// RemoveInstrument deletes the inventory row and strips the instrument's
// allocation from every set that references it. Quantity allocated to sets
// is discarded, not returned: the instrument itself is being destroyed.
func (s *Store) RemoveInstrument(id string) {
	s.mutate(func(st *model.State) bool {
		found := false
		for i := range st.Inventory {
			if st.Inventory[i].ID == id {
				st.Inventory = append(st.Inventory[:i], st.Inventory[i+1:]...)
				found = true
				break
			}
		}
		for i := range st.Sets {
			before := len(st.Sets[i].Instruments)
			st.Sets[i].Instruments = removeAllocation(st.Sets[i].Instruments, id)
			if len(st.Sets[i].Instruments) != before {
				found = true
			}
		}
		return found
	})
}

// InstrumentUpdate is a partial update for an instrument; nil fields are
// left unchanged.
type InstrumentUpdate struct {
	Name        *string
	Description *string
	Image       *string
	Quantity    *int
	IsWishlist  *bool
}

// UpdateInstrument merges the update onto the matching instrument. A
// provided positive quantity is clamped to at most 1: edits never grow
// quantity, only the allocate/return operations move it. A zero or negative
// quantity is ignored.
func (s *Store) UpdateInstrument(id string, update InstrumentUpdate) {
	s.mutate(func(st *model.State) bool {
		inst := st.Instrument(id)
		if inst == nil {
			return false
		}
		if update.Name != nil {
			inst.Name = *update.Name
		}
		if update.Description != nil {
			inst.Description = *update.Description
		}
		if update.Image != nil {
			inst.Image = *update.Image
		}
		if update.Quantity != nil && *update.Quantity > 0 {
			q := *update.Quantity
			if q > 1 {
				q = 1
			}
			inst.Quantity = q
		}
		if update.IsWishlist != nil {
			inst.IsWishlist = *update.IsWishlist
		}
		return true
	})
}

// ToggleWishlist flips the wishlist flag on the matching instrument. It has
// no effect on quantity bookkeeping.
func (s *Store) ToggleWishlist(id string) {
	s.mutate(func(st *model.State) bool {
		inst := st.Instrument(id)
		if inst == nil {
			return false
		}
		inst.IsWishlist = !inst.IsWishlist
		return true
	})
}

// ReorderInventory moves the inventory row at from to position to. An
// out-of-range from is a no-op; to is clamped into range.
func (s *Store) ReorderInventory(from, to int) {
	s.mutate(func(st *model.State) bool {
		moved := moveElement(st.Inventory, from, to)
		if moved == nil {
			return false
		}
		st.Inventory = moved
		return true
	})
}

// ReorderSetInstruments moves the allocation at from to position to within
// the set's order.
func (s *Store) ReorderSetInstruments(setID string, from, to int) {
	s.mutate(func(st *model.State) bool {
		set := st.Set(setID)
		if set == nil {
			return false
		}
		moved := moveElement(set.Instruments, from, to)
		if moved == nil {
			return false
		}
		set.Instruments = moved
		return true
	})
}

// returnAllocations credits each of the set's allocations back to its
// instrument row. Allocations referencing deleted instruments are dropped.
func returnAllocations(st *model.State, set *model.Set) {
	for _, alloc := range set.Instruments {
		if inst := st.Instrument(alloc.InstrumentID); inst != nil {
			inst.Quantity += alloc.Quantity
		}
	}
}

// removeAllocation strips the allocation for instrumentID, preserving the
// order of the rest.
func removeAllocation(allocs []model.SetInstrument, instrumentID string) []model.SetInstrument {
	out := allocs[:0]
	for _, a := range allocs {
		if a.InstrumentID != instrumentID {
			out = append(out, a)
		}
	}
	return out
}

// moveElement removes the element at from and reinserts it at to, clamping
// to into range. Returns nil if from is out of range.
func moveElement[T any](s []T, from, to int) []T {
	if from < 0 || from >= len(s) {
		return nil
	}
	item := s[from]
	rest := append(append([]T{}, s[:from]...), s[from+1:]...)
	if to < 0 {
		to = 0
	}
	if to > len(rest) {
		to = len(rest)
	}
	out := append(append(append([]T{}, rest[:to]...), item), rest[to:]...)
	return out
}
