package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurelia-hotels/service-reservation/internal/domain"
	clientDomain "github.com/aurelia-hotels/service-reservation/internal/domain/client"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientModel is the GORM model for the clients table.
type ClientModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FirstName    string     `gorm:"not null;size:100"`
	LastName     string     `gorm:"not null;size:100"`
	Email        string     `gorm:"uniqueIndex;not null;size:255"`
	Phone        string     `gorm:"size:50"`
	IsVip        bool       `gorm:"not null;default:false"`
	VipCheckedAt *time.Time `gorm:""`
	Version      int64      `gorm:"not null;default:1"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ClientModel) TableName() string {
	return "clients"
}

// GormClientRepository is the GORM-based implementation of client.Repository.
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository.
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID retrieves a client by its unique identifier.
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*clientDomain.Client, error) {
	var model ClientModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Client", id.String())
		}
		return nil, fmt.Errorf("failed to find client by ID: %w", err)
	}
	return toDomainClient(&model), nil
}

// FindByEmail retrieves a client by email, or nil when absent.
func (r *GormClientRepository) FindByEmail(ctx context.Context, email string) (*clientDomain.Client, error) {
	var model ClientModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find client by email: %w", err)
	}
	return toDomainClient(&model), nil
}

// FindAll retrieves all clients.
func (r *GormClientRepository) FindAll(ctx context.Context) ([]*clientDomain.Client, error) {
	var models []ClientModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*clientDomain.Client, len(models))
	for i, m := range models {
		clients[i] = toDomainClient(&m)
	}
	return clients, nil
}

// Save persists a new client.
func (r *GormClientRepository) Save(ctx context.Context, c *clientDomain.Client) error {
	if err := r.db.WithContext(ctx).Create(toClientModel(c)).Error; err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

// Update persists changes to an existing client with optimistic locking.
func (r *GormClientRepository) Update(ctx context.Context, c *clientDomain.Client) error {
	model := toClientModel(c)
	expectedVersion := c.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&ClientModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"first_name":     model.FirstName,
			"last_name":      model.LastName,
			"email":          model.Email,
			"phone":          model.Phone,
			"is_vip":         model.IsVip,
			"vip_checked_at": model.VipCheckedAt,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("client was modified by another transaction")
	}
	return nil
}

// Delete hard-deletes a client.
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ClientModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Client", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toClientModel(c *clientDomain.Client) *ClientModel {
	return &ClientModel{
		ID:           c.ID(),
		FirstName:    c.FirstName(),
		LastName:     c.LastName(),
		Email:        c.Email(),
		Phone:        c.Phone(),
		IsVip:        c.IsVIP(),
		VipCheckedAt: c.VIPCheckedAt(),
		Version:      c.Version(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}

func toDomainClient(m *ClientModel) *clientDomain.Client {
	return clientDomain.Reconstruct(
		m.ID,
		m.FirstName, m.LastName, m.Email, m.Phone,
		m.IsVip,
		m.VipCheckedAt,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}
