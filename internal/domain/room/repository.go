package room

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for room aggregates.
type Repository interface {
	// FindByID retrieves an active room by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)

	// FindAll retrieves all active rooms.
	FindAll(ctx context.Context) ([]*Room, error)

	// FindAvailable retrieves active rooms with no active booking overlapping
	// [checkIn, checkOut), optionally filtered by room type. Advisory read:
	// it takes no lock, the reservation transaction re-checks under the lock.
	FindAvailable(ctx context.Context, checkIn, checkOut time.Time, roomType *RoomType) ([]*Room, error)

	// Save persists a new room.
	Save(ctx context.Context, room *Room) error

	// Update persists changes to an existing room with optimistic locking.
	Update(ctx context.Context, room *Room) error
}
