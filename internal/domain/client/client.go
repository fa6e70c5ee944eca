package client

import (
	"time"

	"github.com/aurelia-hotels/service-reservation/internal/domain"
	"github.com/google/uuid"
)

// Client is the aggregate root for a hotel guest. Its live VIP flag is read
// once per reservation transaction and snapshotted onto the booking; the
// snapshot is decoupled from later changes to this flag.
type Client struct {
	id           uuid.UUID
	firstName    string
	lastName     string
	email        string
	phone        string
	isVIP        bool
	vipCheckedAt *time.Time
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

// NewClient creates a new client with validated fields. The VIP flag comes
// from the classifier at creation time.
func NewClient(firstName, lastName, email, phone string, isVIP bool, now time.Time) (*Client, error) {
	if firstName == "" {
		return nil, domain.NewValidationError("first name is required")
	}
	if lastName == "" {
		return nil, domain.NewValidationError("last name is required")
	}
	if email == "" {
		return nil, domain.NewValidationError("email is required")
	}

	c := &Client{
		id:        uuid.New(),
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		phone:     phone,
		isVIP:     isVIP,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}
	if isVIP {
		checked := now
		c.vipCheckedAt = &checked
	}
	return c, nil
}

// Reconstruct rebuilds a Client from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	firstName, lastName, email, phone string,
	isVIP bool,
	vipCheckedAt *time.Time,
	version int64,
	createdAt, updatedAt time.Time,
) *Client {
	return &Client{
		id:           id,
		firstName:    firstName,
		lastName:     lastName,
		email:        email,
		phone:        phone,
		isVIP:        isVIP,
		vipCheckedAt: vipCheckedAt,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (c *Client) ID() uuid.UUID            { return c.id }
func (c *Client) FirstName() string        { return c.firstName }
func (c *Client) LastName() string         { return c.lastName }
func (c *Client) Email() string            { return c.email }
func (c *Client) Phone() string            { return c.phone }
func (c *Client) IsVIP() bool              { return c.isVIP }
func (c *Client) VIPCheckedAt() *time.Time { return c.vipCheckedAt }
func (c *Client) Version() int64           { return c.version }
func (c *Client) CreatedAt() time.Time     { return c.createdAt }
func (c *Client) UpdatedAt() time.Time     { return c.updatedAt }

// --- Behavior ---

// Update applies partial updates to the client's contact details.
// Changing the email does not retrigger VIP classification by itself; callers
// decide when to call SetVIP.
func (c *Client) Update(firstName, lastName, email, phone string, now time.Time) {
	if firstName != "" {
		c.firstName = firstName
	}
	if lastName != "" {
		c.lastName = lastName
	}
	if email != "" {
		c.email = email
	}
	if phone != "" {
		c.phone = phone
	}
	c.version++
	c.updatedAt = now
}

// SetVIP records a fresh VIP classification result. Existing bookings keep
// whatever snapshot they took at creation.
func (c *Client) SetVIP(isVIP bool, now time.Time) {
	c.isVIP = isVIP
	checked := now
	c.vipCheckedAt = &checked
	c.version++
	c.updatedAt = now
}
