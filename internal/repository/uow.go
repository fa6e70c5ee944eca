package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurelia-hotels/service-reservation/internal/domain"
	bookingDomain "github.com/aurelia-hotels/service-reservation/internal/domain/booking"
	clientDomain "github.com/aurelia-hotels/service-reservation/internal/domain/client"
	roomDomain "github.com/aurelia-hotels/service-reservation/internal/domain/room"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgLockNotAvailable is the PostgreSQL SQLSTATE raised when lock_timeout
// expires while waiting for a row lock.
const pgLockNotAvailable = "55P03"

// GormTxManager runs reservation transactions on a GORM connection,
// bounding row-lock waits with a per-transaction lock_timeout.
type GormTxManager struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormTxManager creates a new GormTxManager.
func NewGormTxManager(db *gorm.DB, lockTimeout time.Duration) *GormTxManager {
	return &GormTxManager{db: db, lockTimeout: lockTimeout}
}

// InTx executes fn inside one database transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
func (m *GormTxManager) InTx(ctx context.Context, fn func(ctx context.Context, uow bookingDomain.UnitOfWork) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.lockTimeout > 0 {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to set lock timeout: %w", err)
			}
		}
		return fn(ctx, &gormUnitOfWork{tx: tx})
	})
}

// gormUnitOfWork exposes repositories bound to one open transaction.
type gormUnitOfWork struct {
	tx *gorm.DB
}

func (u *gormUnitOfWork) Bookings() bookingDomain.BookingRepository {
	return NewGormBookingRepository(u.tx)
}

func (u *gormUnitOfWork) Rooms() roomDomain.Repository {
	return NewGormRoomRepository(u.tx)
}

func (u *gormUnitOfWork) Clients() clientDomain.Repository {
	return NewGormClientRepository(u.tx)
}

// LockRoom takes a FOR UPDATE row lock on the room record, serializing all
// booking writes for that room until the transaction ends. Must run before
// the conflict query; checking first and locking after is a
// time-of-check/time-of-use race.
func (u *gormUnitOfWork) LockRoom(ctx context.Context, roomID uuid.UUID) error {
	var model RoomModel
	err := u.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", roomID).
		First(&model).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFoundError("Room", roomID.String())
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
		return bookingDomain.ErrLockTimeout
	}
	return fmt.Errorf("failed to lock room %s: %w", roomID, err)
}
