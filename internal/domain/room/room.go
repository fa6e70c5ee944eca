package room

import (
	"fmt"
	"time"

	"github.com/aurelia-hotels/service-reservation/internal/domain"
	"github.com/google/uuid"
)

// RoomType classifies a room for pricing and search.
type RoomType string

const (
	TypeStandard     RoomType = "standard"
	TypeDeluxe       RoomType = "deluxe"
	TypeSuite        RoomType = "suite"
	TypePresidential RoomType = "presidential"
)

// IsValid returns true if the room type is recognized.
func (t RoomType) IsValid() bool {
	switch t {
	case TypeStandard, TypeDeluxe, TypeSuite, TypePresidential:
		return true
	}
	return false
}

// Room is the aggregate root for a hotel room. Its nightly rate is read once
// per reservation transaction when computing booking prices.
type Room struct {
	id                 uuid.UUID
	number             string
	roomType           RoomType
	pricePerNightCents int64
	capacity           int
	description        string
	amenities          []string
	isActive           bool
	version            int64
	createdAt          time.Time
	updatedAt          time.Time
}

// NewRoom creates a new active room with validated fields.
func NewRoom(
	number string,
	roomType RoomType,
	pricePerNightCents int64,
	capacity int,
	description string,
	amenities []string,
	now time.Time,
) (*Room, error) {
	if number == "" {
		return nil, domain.NewValidationError("room number is required")
	}
	if !roomType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid room type: %s", roomType))
	}
	if pricePerNightCents < 0 {
		return nil, domain.NewValidationError("price per night cannot be negative")
	}
	if capacity <= 0 {
		capacity = 2
	}

	return &Room{
		id:                 uuid.New(),
		number:             number,
		roomType:           roomType,
		pricePerNightCents: pricePerNightCents,
		capacity:           capacity,
		description:        description,
		amenities:          amenities,
		isActive:           true,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// Reconstruct rebuilds a Room from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	number string,
	roomType RoomType,
	pricePerNightCents int64,
	capacity int,
	description string,
	amenities []string,
	isActive bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:                 id,
		number:             number,
		roomType:           roomType,
		pricePerNightCents: pricePerNightCents,
		capacity:           capacity,
		description:        description,
		amenities:          amenities,
		isActive:           isActive,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// --- Getters ---

func (r *Room) ID() uuid.UUID             { return r.id }
func (r *Room) Number() string            { return r.number }
func (r *Room) Type() RoomType            { return r.roomType }
func (r *Room) PricePerNightCents() int64 { return r.pricePerNightCents }
func (r *Room) Capacity() int             { return r.capacity }
func (r *Room) Description() string       { return r.description }
func (r *Room) Amenities() []string       { return r.amenities }
func (r *Room) IsActive() bool            { return r.isActive }
func (r *Room) Version() int64            { return r.version }
func (r *Room) CreatedAt() time.Time      { return r.createdAt }
func (r *Room) UpdatedAt() time.Time      { return r.updatedAt }

// --- Behavior ---

// Update applies partial updates to the room.
func (r *Room) Update(
	number string,
	roomType RoomType,
	pricePerNightCents int64,
	capacity int,
	description string,
	amenities []string,
	now time.Time,
) error {
	if number != "" {
		r.number = number
	}
	if roomType != "" {
		if !roomType.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid room type: %s", roomType))
		}
		r.roomType = roomType
	}
	if pricePerNightCents > 0 {
		r.pricePerNightCents = pricePerNightCents
	}
	if capacity > 0 {
		r.capacity = capacity
	}
	if description != "" {
		r.description = description
	}
	if amenities != nil {
		r.amenities = amenities
	}
	r.version++
	r.updatedAt = now
	return nil
}

// Deactivate soft-deletes the room. Existing bookings are untouched.
func (r *Room) Deactivate(now time.Time) {
	r.isActive = false
	r.version++
	r.updatedAt = now
}
