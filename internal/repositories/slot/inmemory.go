package slot

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]map[int]*Slot
}

// NewInMemory creates a new in-memory repository. A nil clock uses the
// system clock.
func NewInMemory(clk clock.Clock) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &InMemoryRepository{
		clock: clk,
		store: make(map[string]map[int]*Slot),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Save stores a slot
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	stored := copySlot(input.Slot)
	stored.CreatedAt = r.clock.Now()
	if input.TTL > 0 {
		stored.ExpiresAt = stored.CreatedAt.Add(input.TTL)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.store[stored.RunID] == nil {
		r.store[stored.RunID] = make(map[int]*Slot)
	}
	r.store[stored.RunID][stored.Player] = stored

	return &SaveOutput{Slot: copySlot(stored)}, nil
}

// Get retrieves one player's slot
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if err := validateGet(input); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.store[input.RunID][input.Player]
	if !exists || r.expired(stored) {
		return nil, errors.NotFound(errSlotNotFound)
	}

	// Return a copy to prevent external modification
	return &GetOutput{Slot: copySlot(stored)}, nil
}

// List retrieves every live slot of a run
func (r *InMemoryRepository) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateRun(input.RunID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := make([]*Slot, 0, len(r.store[input.RunID]))
	for _, stored := range r.store[input.RunID] {
		if !r.expired(stored) {
			slots = append(slots, copySlot(stored))
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Player < slots[j].Player })

	return &ListOutput{Slots: slots}, nil
}

// Delete removes every slot of a run
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateRun(input.RunID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := len(r.store[input.RunID])
	delete(r.store, input.RunID)

	return &DeleteOutput{SlotsDeleted: deleted}, nil
}

func (r *InMemoryRepository) expired(s *Slot) bool {
	return !s.ExpiresAt.IsZero() && r.clock.Now().After(s.ExpiresAt)
}
