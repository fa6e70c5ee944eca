package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aurelia-hotels/service-reservation/internal/domain"
	bookingDomain "github.com/aurelia-hotels/service-reservation/internal/domain/booking"
	roomDomain "github.com/aurelia-hotels/service-reservation/internal/domain/room"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomModel is the GORM model for the rooms table.
type RoomModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number             string    `gorm:"uniqueIndex;not null;size:20"`
	Type               string    `gorm:"not null;size:20;default:'standard'"`
	PricePerNightCents int64     `gorm:"not null"`
	Capacity           int       `gorm:"not null;default:2"`
	Description        string    `gorm:"type:text"`
	Amenities          string    `gorm:"type:text"`
	IsActive           bool      `gorm:"not null;default:true"`
	Version            int64     `gorm:"not null;default:1"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RoomModel) TableName() string {
	return "rooms"
}

// GormRoomRepository is the GORM-based implementation of room.Repository.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID retrieves an active room by its unique identifier.
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Room", id.String())
		}
		return nil, fmt.Errorf("failed to find room by ID: %w", err)
	}
	return toDomainRoom(&model), nil
}

// FindAll retrieves all active rooms.
func (r *GormRoomRepository) FindAll(ctx context.Context) ([]*roomDomain.Room, error) {
	var models []RoomModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("number").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	rooms := make([]*roomDomain.Room, len(models))
	for i, m := range models {
		rooms[i] = toDomainRoom(&m)
	}
	return rooms, nil
}

// FindAvailable retrieves active rooms with no active booking overlapping
// [checkIn, checkOut). Advisory read, no lock taken.
func (r *GormRoomRepository) FindAvailable(
	ctx context.Context,
	checkIn, checkOut time.Time,
	roomType *roomDomain.RoomType,
) ([]*roomDomain.Room, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(
			"id NOT IN (?)",
			r.db.Model(&BookingModel{}).
				Select("room_id").
				Where("status = ?", string(bookingDomain.StatusActive)).
				Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn),
		)
	if roomType != nil {
		query = query.Where("type = ?", string(*roomType))
	}

	var models []RoomModel
	if err := query.Order("number").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find available rooms: %w", err)
	}

	rooms := make([]*roomDomain.Room, len(models))
	for i, m := range models {
		rooms[i] = toDomainRoom(&m)
	}
	return rooms, nil
}

// Save persists a new room.
func (r *GormRoomRepository) Save(ctx context.Context, rm *roomDomain.Room) error {
	if err := r.db.WithContext(ctx).Create(toRoomModel(rm)).Error; err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

// Update persists changes to an existing room with optimistic locking.
func (r *GormRoomRepository) Update(ctx context.Context, rm *roomDomain.Room) error {
	model := toRoomModel(rm)
	expectedVersion := rm.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"number":                model.Number,
			"type":                  model.Type,
			"price_per_night_cents": model.PricePerNightCents,
			"capacity":              model.Capacity,
			"description":           model.Description,
			"amenities":             model.Amenities,
			"is_active":             model.IsActive,
			"version":               model.Version,
			"updated_at":            model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("room was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toRoomModel(rm *roomDomain.Room) *RoomModel {
	return &RoomModel{
		ID:                 rm.ID(),
		Number:             rm.Number(),
		Type:               string(rm.Type()),
		PricePerNightCents: rm.PricePerNightCents(),
		Capacity:           rm.Capacity(),
		Description:        rm.Description(),
		Amenities:          strings.Join(rm.Amenities(), ","),
		IsActive:           rm.IsActive(),
		Version:            rm.Version(),
		CreatedAt:          rm.CreatedAt(),
		UpdatedAt:          rm.UpdatedAt(),
	}
}

func toDomainRoom(m *RoomModel) *roomDomain.Room {
	var amenities []string
	if m.Amenities != "" {
		amenities = strings.Split(m.Amenities, ",")
	}
	return roomDomain.Reconstruct(
		m.ID,
		m.Number,
		roomDomain.RoomType(m.Type),
		m.PricePerNightCents,
		m.Capacity,
		m.Description,
		amenities,
		m.IsActive,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}
