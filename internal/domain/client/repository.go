package client

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for client aggregates.
type Repository interface {
	// FindByID retrieves a client by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByEmail retrieves a client by email, or nil when absent.
	FindByEmail(ctx context.Context, email string) (*Client, error)

	// FindAll retrieves all clients.
	FindAll(ctx context.Context) ([]*Client, error)

	// Save persists a new client.
	Save(ctx context.Context, client *Client) error

	// Update persists changes to an existing client with optimistic locking.
	Update(ctx context.Context, client *Client) error

	// Delete hard-deletes a client.
	Delete(ctx context.Context, id uuid.UUID) error
}
