package application

import (
	"context"
	"time"

	"github.com/aurelia-hotels/service-reservation/internal/domain"
	roomDomain "github.com/aurelia-hotels/service-reservation/internal/domain/room"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateRoomRequest holds the data needed to register a room.
type CreateRoomRequest struct {
	Number        string   `json:"number" binding:"required"`
	Type          string   `json:"type" binding:"required"`
	PricePerNight int64    `json:"price_per_night_cents" binding:"required"`
	Capacity      int      `json:"capacity"`
	Description   string   `json:"description"`
	Amenities     []string `json:"amenities"`
}

// UpdateRoomRequest holds a partial room update; zero values keep the
// existing field.
type UpdateRoomRequest struct {
	Number        string   `json:"number"`
	Type          string   `json:"type"`
	PricePerNight int64    `json:"price_per_night_cents"`
	Capacity      int      `json:"capacity"`
	Description   string   `json:"description"`
	Amenities     []string `json:"amenities"`
}

// RoomDTO is the response representation of a room.
type RoomDTO struct {
	ID            uuid.UUID `json:"id"`
	Number        string    `json:"number"`
	Type          string    `json:"type"`
	PricePerNight int64     `json:"price_per_night_cents"`
	Capacity      int       `json:"capacity"`
	Description   string    `json:"description,omitempty"`
	Amenities     []string  `json:"amenities,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RoomService manages the room inventory.
type RoomService struct {
	rooms  roomDomain.Repository
	clock  domain.Clock
	logger *zap.Logger
}

// NewRoomService creates a new RoomService.
func NewRoomService(rooms roomDomain.Repository, clock domain.Clock, logger *zap.Logger) *RoomService {
	return &RoomService{rooms: rooms, clock: clock, logger: logger}
}

// CreateRoom registers a new room.
func (s *RoomService) CreateRoom(ctx context.Context, req CreateRoomRequest) (*RoomDTO, error) {
	room, err := roomDomain.NewRoom(
		req.Number,
		roomDomain.RoomType(req.Type),
		req.PricePerNight,
		req.Capacity,
		req.Description,
		req.Amenities,
		s.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.rooms.Save(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("room created",
		zap.String("room_id", room.ID().String()),
		zap.String("number", room.Number()),
	)
	result := toRoomDTO(room)
	return &result, nil
}

// GetRoom retrieves an active room by ID.
func (s *RoomService) GetRoom(ctx context.Context, roomID uuid.UUID) (*RoomDTO, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	result := toRoomDTO(room)
	return &result, nil
}

// ListRooms retrieves all active rooms.
func (s *RoomService) ListRooms(ctx context.Context) ([]RoomDTO, error) {
	rooms, err := s.rooms.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toRoomDTOs(rooms), nil
}

// FindAvailableRooms retrieves active rooms free for the whole [checkIn,
// checkOut) range, optionally filtered by type. The result is advisory; only
// CreateBooking, under the room lock, decides availability authoritatively.
func (s *RoomService) FindAvailableRooms(ctx context.Context, checkIn, checkOut string, roomType string) ([]RoomDTO, error) {
	stay, err := parseStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	var typeFilter *roomDomain.RoomType
	if roomType != "" {
		t := roomDomain.RoomType(roomType)
		if !t.IsValid() {
			return nil, domain.NewValidationError("invalid room type: " + roomType)
		}
		typeFilter = &t
	}

	rooms, err := s.rooms.FindAvailable(ctx, stay.CheckIn(), stay.CheckOut(), typeFilter)
	if err != nil {
		return nil, err
	}
	return toRoomDTOs(rooms), nil
}

// UpdateRoom applies a partial update to a room. Rate changes affect future
// bookings only; existing bookings keep their computed price.
func (s *RoomService) UpdateRoom(ctx context.Context, roomID uuid.UUID, req UpdateRoomRequest) (*RoomDTO, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if err := room.Update(
		req.Number,
		roomDomain.RoomType(req.Type),
		req.PricePerNight,
		req.Capacity,
		req.Description,
		req.Amenities,
		s.clock.Now(),
	); err != nil {
		return nil, err
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	result := toRoomDTO(room)
	return &result, nil
}

// DeactivateRoom soft-deletes a room so it no longer accepts bookings.
func (s *RoomService) DeactivateRoom(ctx context.Context, roomID uuid.UUID) error {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return err
	}

	room.Deactivate(s.clock.Now())
	if err := s.rooms.Update(ctx, room); err != nil {
		return err
	}

	s.logger.Info("room deactivated", zap.String("room_id", roomID.String()))
	return nil
}

func toRoomDTO(room *roomDomain.Room) RoomDTO {
	return RoomDTO{
		ID:            room.ID(),
		Number:        room.Number(),
		Type:          string(room.Type()),
		PricePerNight: room.PricePerNightCents(),
		Capacity:      room.Capacity(),
		Description:   room.Description(),
		Amenities:     room.Amenities(),
		IsActive:      room.IsActive(),
		CreatedAt:     room.CreatedAt(),
		UpdatedAt:     room.UpdatedAt(),
	}
}

func toRoomDTOs(rooms []*roomDomain.Room) []RoomDTO {
	dtos := make([]RoomDTO, len(rooms))
	for i, room := range rooms {
		dtos[i] = toRoomDTO(room)
	}
	return dtos
}
