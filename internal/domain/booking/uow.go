package booking

import (
	"context"

	"github.com/aurelia-hotels/service-reservation/internal/domain/client"
	"github.com/aurelia-hotels/service-reservation/internal/domain/room"
	"github.com/google/uuid"
)

// UnitOfWork exposes the repositories bound to one atomic transaction scope,
// plus the room-scoped lock that serializes booking writes per room.
type UnitOfWork interface {
	Bookings() BookingRepository
	Rooms() room.Repository
	Clients() client.Repository

	// LockRoom acquires an exclusive lock over the room's booking set, held
	// until the transaction commits or rolls back. It must be taken before
	// any conflict query; waiting is bounded and returns ErrLockTimeout on
	// expiry. Transactions for different rooms do not contend.
	LockRoom(ctx context.Context, roomID uuid.UUID) error
}

// TxManager runs a function inside one atomic transaction scope. The
// transaction commits when fn returns nil and rolls back otherwise, leaving
// no partial state behind.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}
