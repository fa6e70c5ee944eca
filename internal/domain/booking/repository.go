package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByRoomID retrieves all bookings for a room, newest first.
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*Booking, error)

	// FindByClientID retrieves all bookings for a client, newest first.
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*Booking, error)

	// FindConflict returns the first active booking for the room whose range
	// overlaps the candidate stay, excluding excludeID when non-nil, or nil
	// when the range is clear. Only sound when called under the room lock.
	FindConflict(ctx context.Context, roomID uuid.UUID, stay DateRange, excludeID *uuid.UUID) (*Booking, error)

	// FindDueForCompletion retrieves active bookings whose stay ended on or
	// before the given date.
	FindDueForCompletion(ctx context.Context, date time.Time) ([]*Booking, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error

	// Delete hard-deletes a booking (admin operation, bypasses the lifecycle).
	Delete(ctx context.Context, id uuid.UUID) error
}
