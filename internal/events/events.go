package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicReservationEvents carries every booking lifecycle event.
const TopicReservationEvents = "reservation.events"

// Event types published on TopicReservationEvents.
const (
	BookingCreated   = "reservation.booking.created"
	BookingUpdated   = "reservation.booking.updated"
	BookingCancelled = "reservation.booking.cancelled"
	BookingCompleted = "reservation.booking.completed"
)

// BookingCreatedEvent is published when a new booking is committed.
type BookingCreatedEvent struct {
	BookingID       uuid.UUID `json:"booking_id"`
	RoomID          uuid.UUID `json:"room_id"`
	ClientID        uuid.UUID `json:"client_id"`
	CheckInDate     time.Time `json:"check_in_date"`
	CheckOutDate    time.Time `json:"check_out_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
	ClientWasVIP    bool      `json:"client_was_vip"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// BookingUpdatedEvent is published after a successful partial update.
type BookingUpdatedEvent struct {
	BookingID       uuid.UUID `json:"booking_id"`
	RoomID          uuid.UUID `json:"room_id"`
	CheckInDate     time.Time `json:"check_in_date"`
	CheckOutDate    time.Time `json:"check_out_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published when a booking is cancelled.
type BookingCancelledEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	RoomID     uuid.UUID `json:"room_id"`
	ClientID   uuid.UUID `json:"client_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCompletedEvent is published when the checkout sweep completes a stay.
type BookingCompletedEvent struct {
	BookingID    uuid.UUID `json:"booking_id"`
	RoomID       uuid.UUID `json:"room_id"`
	ClientID     uuid.UUID `json:"client_id"`
	CheckOutDate time.Time `json:"check_out_date"`
	OccurredAt   time.Time `json:"occurred_at"`
}
