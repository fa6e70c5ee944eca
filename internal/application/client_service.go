package application

import (
	"context"
	"time"

	"github.com/aurelia-hotels/service-reservation/internal/domain"
	clientDomain "github.com/aurelia-hotels/service-reservation/internal/domain/client"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateClientRequest holds the data needed to register a guest.
type CreateClientRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

// UpdateClientRequest holds a partial contact-detail update.
type UpdateClientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ClientDTO is the response representation of a client.
type ClientDTO struct {
	ID           uuid.UUID  `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	IsVip        bool       `json:"is_vip"`
	VipCheckedAt *time.Time `json:"vip_checked_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ClientService manages guests and their VIP classification.
type ClientService struct {
	clients    clientDomain.Repository
	classifier clientDomain.VIPClassifier
	clock      domain.Clock
	logger     *zap.Logger
}

// NewClientService creates a new ClientService.
func NewClientService(
	clients clientDomain.Repository,
	classifier clientDomain.VIPClassifier,
	clock domain.Clock,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clients:    clients,
		classifier: classifier,
		clock:      clock,
		logger:     logger,
	}
}

// CreateClient registers a new guest. VIP status is classified at creation
// time; classification never blocks registration.
func (s *ClientService) CreateClient(ctx context.Context, req CreateClientRequest) (*ClientDTO, error) {
	existing, err := s.clients.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflictError("client with this email already exists")
	}

	status := s.classifier.Classify(ctx, req.Email)

	guest, err := clientDomain.NewClient(req.FirstName, req.LastName, req.Email, req.Phone, status.IsVIP, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.clients.Save(ctx, guest); err != nil {
		return nil, err
	}

	s.logger.Info("client created",
		zap.String("client_id", guest.ID().String()),
		zap.Bool("is_vip", guest.IsVIP()),
	)
	result := toClientDTO(guest)
	return &result, nil
}

// GetClient retrieves a client by ID.
func (s *ClientService) GetClient(ctx context.Context, clientID uuid.UUID) (*ClientDTO, error) {
	guest, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	result := toClientDTO(guest)
	return &result, nil
}

// ListClients retrieves all clients.
func (s *ClientService) ListClients(ctx context.Context) ([]ClientDTO, error) {
	clients, err := s.clients.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toClientDTOs(clients), nil
}

// UpdateClient applies a partial contact-detail update. An email change
// retriggers VIP classification; bookings keep their snapshot.
func (s *ClientService) UpdateClient(ctx context.Context, clientID uuid.UUID, req UpdateClientRequest) (*ClientDTO, error) {
	guest, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email != guest.Email() {
		existing, err := s.clients.FindByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.NewConflictError("client with this email already exists")
		}
	}

	emailChanged := req.Email != "" && req.Email != guest.Email()
	now := s.clock.Now()
	guest.Update(req.FirstName, req.LastName, req.Email, req.Phone, now)
	if emailChanged {
		status := s.classifier.Classify(ctx, guest.Email())
		guest.SetVIP(status.IsVIP, now)
	}

	if err := s.clients.Update(ctx, guest); err != nil {
		return nil, err
	}
	result := toClientDTO(guest)
	return &result, nil
}

// RefreshVIP re-runs VIP classification for a client on demand.
func (s *ClientService) RefreshVIP(ctx context.Context, clientID uuid.UUID) (*ClientDTO, error) {
	guest, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	status := s.classifier.Classify(ctx, guest.Email())
	guest.SetVIP(status.IsVIP, s.clock.Now())

	if err := s.clients.Update(ctx, guest); err != nil {
		return nil, err
	}

	s.logger.Info("vip status refreshed",
		zap.String("client_id", clientID.String()),
		zap.Bool("is_vip", guest.IsVIP()),
	)
	result := toClientDTO(guest)
	return &result, nil
}

// DeleteClient removes a client record.
func (s *ClientService) DeleteClient(ctx context.Context, clientID uuid.UUID) error {
	return s.clients.Delete(ctx, clientID)
}

func toClientDTO(c *clientDomain.Client) ClientDTO {
	return ClientDTO{
		ID:           c.ID(),
		FirstName:    c.FirstName(),
		LastName:     c.LastName(),
		Email:        c.Email(),
		Phone:        c.Phone(),
		IsVip:        c.IsVIP(),
		VipCheckedAt: c.VIPCheckedAt(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}

func toClientDTOs(clients []*clientDomain.Client) []ClientDTO {
	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = toClientDTO(c)
	}
	return dtos
}
