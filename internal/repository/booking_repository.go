package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurelia-hotels/service-reservation/internal/domain"
	bookingDomain "github.com/aurelia-hotels/service-reservation/internal/domain/booking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoomID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	ClientID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	CheckInDate     time.Time  `gorm:"type:date;not null"`
	CheckOutDate    time.Time  `gorm:"type:date;not null"`
	TotalPriceCents int64      `gorm:"not null"`
	Status          string     `gorm:"not null;size:20;index"`
	ClientWasVip    bool       `gorm:"not null;default:false"`
	Notes           string     `gorm:"size:1000"`
	CancelledAt     *time.Time `gorm:""`
	Version         int64      `gorm:"not null;default:1"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByRoomID retrieves all bookings for a room, newest first.
func (r *GormBookingRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by room: %w", err)
	}
	return toDomainBookings(models)
}

// FindByClientID retrieves all bookings for a client, newest first.
func (r *GormBookingRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by client: %w", err)
	}
	return toDomainBookings(models)
}

// FindConflict returns the first active booking overlapping the candidate
// stay on the room, excluding excludeID when non-nil, or nil when clear.
// Half-open interval test: existing.checkIn < stay.checkOut AND
// existing.checkOut > stay.checkIn, so touching ranges never conflict.
func (r *GormBookingRepository) FindConflict(
	ctx context.Context,
	roomID uuid.UUID,
	stay bookingDomain.DateRange,
	excludeID *uuid.UUID,
) (*bookingDomain.Booking, error) {
	query := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status = ?", string(bookingDomain.StatusActive)).
		Where("check_in_date < ? AND check_out_date > ?", stay.CheckOut(), stay.CheckIn())
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var model BookingModel
	if err := query.Order("check_in_date").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query booking conflicts: %w", err)
	}
	return toDomainBooking(&model)
}

// FindDueForCompletion retrieves active bookings whose stay ended on or
// before the given date.
func (r *GormBookingRepository) FindDueForCompletion(ctx context.Context, date time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(bookingDomain.StatusActive)).
		Where("check_out_date <= ?", date).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings due for completion: %w", err)
	}
	return toDomainBookings(models)
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	if err := r.db.WithContext(ctx).Create(toBookingModel(bk)).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// Only update if the version matches (current version - 1, since
	// IncrementVersion was called before persisting).
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"check_in_date":     model.CheckInDate,
			"check_out_date":    model.CheckOutDate,
			"total_price_cents": model.TotalPriceCents,
			"status":            model.Status,
			"notes":             model.Notes,
			"cancelled_at":      model.CancelledAt,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// Delete hard-deletes a booking (admin operation).
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:              bk.ID(),
		RoomID:          bk.RoomID(),
		ClientID:        bk.ClientID(),
		CheckInDate:     bk.Stay().CheckIn(),
		CheckOutDate:    bk.Stay().CheckOut(),
		TotalPriceCents: bk.TotalPriceCents(),
		Status:          string(bk.Status()),
		ClientWasVip:    bk.ClientWasVIP(),
		Notes:           bk.Notes(),
		CancelledAt:     bk.CancelledAt(),
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	stay, err := bookingDomain.NewDateRange(m.CheckInDate, m.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("corrupt stay range on booking %s: %w", m.ID, err)
	}

	return bookingDomain.Reconstruct(
		m.ID, m.RoomID, m.ClientID,
		stay,
		m.TotalPriceCents,
		status,
		m.ClientWasVip,
		m.Notes,
		m.CancelledAt,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
