package booking

import "github.com/aurelia-hotels/service-reservation/internal/domain"

// Failure modes of the reservation core. All of them abort the current
// transaction; none are retried by the service itself.
var (
	ErrInvalidRange     = domain.NewValidationError("check-out date must be after check-in date")
	ErrPastCheckIn      = domain.NewValidationError("check-in date cannot be in the past")
	ErrRoomUnavailable  = domain.NewConflictError("room is already booked for the selected dates")
	ErrAlreadyCancelled = &domain.Error{Code: domain.CodeInvalidState, Message: "booking is already cancelled"}
	ErrLockTimeout      = domain.NewLockTimeoutError("timed out waiting for the room booking lock")
)
