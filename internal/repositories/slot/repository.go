// Package slot stores generated slot data so clients can fetch it after
// generation.
package slot

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/ow-rando/internal/slotdata"
)

// EntityType is the core.Entity type reported by a Slot.
const EntityType = "slot"

//go:generate mockgen -destination=mock/mock_repository.go -package=slotmock github.com/KirkDiggler/ow-rando/internal/repositories/slot Repository

// Slot is one player's stored generation result
type Slot struct {
	// Generation run this slot belongs to; a multiworld run shares one ID
	RunID string `json:"run_id"`

	// Player slot number, starting at 1
	Player int `json:"player"`

	// Seed the player's roller was created from
	Seed int64 `json:"seed"`

	// Client payload
	Summary slotdata.Summary `json:"summary"`

	// Spoiler log text, empty when nothing was randomized
	Spoiler string `json:"spoiler,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Zero when the backend keeps slots forever
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// GetID returns "<run id>/<player>", unique across every stored slot.
func (s *Slot) GetID() string {
	return fmt.Sprintf("%s/%d", s.RunID, s.Player)
}

// GetType returns the entity type
func (s *Slot) GetType() string {
	return EntityType
}

var _ core.Entity = (*Slot)(nil)

// SaveInput contains parameters for storing a slot
type SaveInput struct {
	Slot *Slot
	TTL  time.Duration // Ignored by backends without expiry
}

// SaveOutput contains the stored slot
type SaveOutput struct {
	Slot *Slot
}

// GetInput identifies one slot
type GetInput struct {
	RunID  string
	Player int
}

// GetOutput contains the slot
type GetOutput struct {
	Slot *Slot
}

// ListInput identifies a generation run
type ListInput struct {
	RunID string
}

// ListOutput contains every slot of the run ordered by player
type ListOutput struct {
	Slots []*Slot
}

// DeleteInput identifies a generation run to remove
type DeleteInput struct {
	RunID string
}

// DeleteOutput reports how many slots were removed
type DeleteOutput struct {
	SlotsDeleted int
}

// Repository defines the interface for slot storage operations
type Repository interface {
	// Save stores a slot, replacing any slot with the same run and player
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves one player's slot
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// List retrieves every slot of a run
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Delete removes every slot of a run
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}
