package booking

import (
	"time"

	"github.com/aurelia-hotels/service-reservation/internal/domain"
	"github.com/google/uuid"
)

// Booking is the aggregate root for the reservation domain. A booking holds a
// room for a client over a half-open date range and carries the price computed
// at the time the dates were fixed, plus a VIP snapshot frozen at creation.
type Booking struct {
	id              uuid.UUID
	roomID          uuid.UUID
	clientID        uuid.UUID
	stay            DateRange
	totalPriceCents int64
	status          BookingStatus
	clientWasVIP    bool
	notes           string

	cancelledAt *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new active Booking. The caller supplies the already
// validated stay range, the computed price and the client's VIP flag as it is
// at this instant; "now" comes from the transaction's clock.
func NewBooking(
	roomID, clientID uuid.UUID,
	stay DateRange,
	totalPriceCents int64,
	clientWasVIP bool,
	notes string,
	now time.Time,
) (*Booking, error) {
	if roomID == uuid.Nil {
		return nil, domain.NewValidationError("room ID is required")
	}
	if clientID == uuid.Nil {
		return nil, domain.NewValidationError("client ID is required")
	}
	if totalPriceCents < 0 {
		return nil, domain.NewValidationError("total price cannot be negative")
	}

	return &Booking{
		id:              uuid.New(),
		roomID:          roomID,
		clientID:        clientID,
		stay:            stay,
		totalPriceCents: totalPriceCents,
		status:          StatusActive,
		clientWasVIP:    clientWasVIP,
		notes:           notes,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, roomID, clientID uuid.UUID,
	stay DateRange,
	totalPriceCents int64,
	status BookingStatus,
	clientWasVIP bool,
	notes string,
	cancelledAt *time.Time,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		roomID:          roomID,
		clientID:        clientID,
		stay:            stay,
		totalPriceCents: totalPriceCents,
		status:          status,
		clientWasVIP:    clientWasVIP,
		notes:           notes,
		cancelledAt:     cancelledAt,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// RoomID returns the booked room's identifier.
func (b *Booking) RoomID() uuid.UUID { return b.roomID }

// ClientID returns the booking client's identifier.
func (b *Booking) ClientID() uuid.UUID { return b.clientID }

// Stay returns the booked date range.
func (b *Booking) Stay() DateRange { return b.stay }

// TotalPriceCents returns the total stay price in cents.
func (b *Booking) TotalPriceCents() int64 { return b.totalPriceCents }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// ClientWasVIP returns the client's VIP flag as snapshotted at creation time.
// It never changes afterwards, even if the client's live flag does.
func (b *Booking) ClientWasVIP() bool { return b.clientWasVIP }

// Notes returns any free-text notes attached to the booking.
func (b *Booking) Notes() string { return b.notes }

// CancelledAt returns the time the booking was cancelled, or nil.
func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// ensureMutable rejects changes once the booking has left the active state.
func (b *Booking) ensureMutable() error {
	switch b.status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return domain.NewInvalidStateError(string(StatusCompleted), string(StatusActive))
	}
	return nil
}

// Reschedule moves the booking to a new date range with the price recomputed
// for it. The caller must have re-checked the range for conflicts under the
// room lock before calling this.
func (b *Booking) Reschedule(stay DateRange, totalPriceCents int64, now time.Time) error {
	if err := b.ensureMutable(); err != nil {
		return err
	}
	b.stay = stay
	b.totalPriceCents = totalPriceCents
	b.updatedAt = now
	return nil
}

// SetNotes replaces the booking's free-text notes.
func (b *Booking) SetNotes(notes string, now time.Time) error {
	if err := b.ensureMutable(); err != nil {
		return err
	}
	b.notes = notes
	b.updatedAt = now
	return nil
}

// Cancel transitions the booking from active to cancelled. Irreversible.
func (b *Booking) Cancel(now time.Time) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if !b.status.CanTransitionTo(StatusCancelled) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	b.status = StatusCancelled
	b.cancelledAt = &now
	b.updatedAt = now
	return nil
}

// Complete transitions the booking from active to completed. Normally driven
// by the checkout sweep once the stay is over.
func (b *Booking) Complete(now time.Time) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if !b.status.CanTransitionTo(StatusCompleted) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCompleted))
	}
	b.status = StatusCompleted
	b.updatedAt = now
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion(now time.Time) {
	b.version++
	b.updatedAt = now
}
