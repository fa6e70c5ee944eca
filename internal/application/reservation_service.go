package application

import (
	"context"
	"fmt"
	"time"

	"github.com/aurelia-hotels/service-reservation/internal/domain"
	bookingDomain "github.com/aurelia-hotels/service-reservation/internal/domain/booking"
	"github.com/aurelia-hotels/service-reservation/internal/events"
	"github.com/aurelia-hotels/service-reservation/internal/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// EventPublisher publishes CloudEvents. Satisfied by *kafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	RoomID       uuid.UUID `json:"room_id" binding:"required"`
	ClientID     uuid.UUID `json:"client_id" binding:"required"`
	CheckInDate  string    `json:"check_in_date" binding:"required"`
	CheckOutDate string    `json:"check_out_date" binding:"required"`
	Notes        string    `json:"notes"`
}

// UpdateBookingRequest is a partial update; nil fields keep their value.
type UpdateBookingRequest struct {
	CheckInDate  *string `json:"check_in_date"`
	CheckOutDate *string `json:"check_out_date"`
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID              uuid.UUID  `json:"id"`
	RoomID          uuid.UUID  `json:"room_id"`
	ClientID        uuid.UUID  `json:"client_id"`
	CheckInDate     string     `json:"check_in_date"`
	CheckOutDate    string     `json:"check_out_date"`
	Nights          int64      `json:"nights"`
	TotalPriceCents int64      `json:"total_price_cents"`
	Status          string     `json:"status"`
	ClientWasVip    bool       `json:"client_was_vip"`
	Notes           string     `json:"notes,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ReservationService orchestrates booking use cases. All writes to a room's
// booking set run inside one transaction holding that room's lock, which is
// what keeps the no-overlap invariant true under concurrent callers.
type ReservationService struct {
	txm      bookingDomain.TxManager
	bookings bookingDomain.BookingRepository
	pricing  bookingDomain.PricingStrategy
	clock    domain.Clock
	producer EventPublisher
	logger   *zap.Logger
}

// NewReservationService creates a new ReservationService.
func NewReservationService(
	txm bookingDomain.TxManager,
	bookings bookingDomain.BookingRepository,
	pricing bookingDomain.PricingStrategy,
	clock domain.Clock,
	producer EventPublisher,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		txm:      txm,
		bookings: bookings,
		pricing:  pricing,
		clock:    clock,
		producer: producer,
		logger:   logger,
	}
}

// CreateBooking reserves a room for a client over a date range.
//
// Validation runs before any lock is taken. Inside the transaction the room
// lock is acquired first, then the conflict query runs under it; a conflict
// rolls the whole transaction back with no partial state.
func (s *ReservationService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	stay, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	// The "now" boundary is evaluated once, at transaction start.
	today := bookingDomain.TruncateToDay(s.clock.Now())
	if stay.CheckIn().Before(today) {
		return nil, bookingDomain.ErrPastCheckIn
	}

	var created *bookingDomain.Booking
	err = s.txm.InTx(ctx, func(ctx context.Context, uow bookingDomain.UnitOfWork) error {
		room, err := uow.Rooms().FindByID(ctx, req.RoomID)
		if err != nil {
			return err
		}
		guest, err := uow.Clients().FindByID(ctx, req.ClientID)
		if err != nil {
			return err
		}

		if err := uow.LockRoom(ctx, room.ID()); err != nil {
			return err
		}

		conflict, err := uow.Bookings().FindConflict(ctx, room.ID(), stay, nil)
		if err != nil {
			return err
		}
		if conflict != nil {
			return bookingDomain.ErrRoomUnavailable
		}

		totalPriceCents, err := s.pricing.Calculate(stay, room.PricePerNightCents())
		if err != nil {
			return domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
		}

		bk, err := bookingDomain.NewBooking(
			room.ID(),
			guest.ID(),
			stay,
			totalPriceCents,
			guest.IsVIP(),
			req.Notes,
			s.clock.Now(),
		)
		if err != nil {
			return err
		}

		if err := uow.Bookings().Save(ctx, bk); err != nil {
			return err
		}
		created = bk
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", created.ID().String()),
		zap.String("room_id", created.RoomID().String()),
		zap.String("stay", created.Stay().String()),
	)
	s.publishCreated(ctx, created)

	result := toBookingDTO(created)
	return &result, nil
}

// UpdateBooking applies a partial update to a non-cancelled booking. Date
// changes re-run the conflict query under the same room lock Create uses and
// recompute the price from the room's current nightly rate.
func (s *ReservationService) UpdateBooking(ctx context.Context, bookingID uuid.UUID, req UpdateBookingRequest) (*BookingDTO, error) {
	patch, err := parsePatch(req)
	if err != nil {
		return nil, err
	}

	var updated *bookingDomain.Booking
	err = s.txm.InTx(ctx, func(ctx context.Context, uow bookingDomain.UnitOfWork) error {
		bk, err := uow.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if bk.Status() == bookingDomain.StatusCancelled {
			return bookingDomain.ErrAlreadyCancelled
		}

		// Same lock scope as Create: skipping it here would reopen the
		// double-booking race between the conflict check and the write.
		if err := uow.LockRoom(ctx, bk.RoomID()); err != nil {
			return err
		}

		now := s.clock.Now()

		if patch.ChangesDates() {
			stay, err := patch.MergedStay(bk.Stay())
			if err != nil {
				return err
			}
			if !stay.Equal(bk.Stay()) {
				selfID := bk.ID()
				conflict, err := uow.Bookings().FindConflict(ctx, bk.RoomID(), stay, &selfID)
				if err != nil {
					return err
				}
				if conflict != nil {
					return bookingDomain.ErrRoomUnavailable
				}

				room, err := uow.Rooms().FindByID(ctx, bk.RoomID())
				if err != nil {
					return err
				}
				totalPriceCents, err := s.pricing.Calculate(stay, room.PricePerNightCents())
				if err != nil {
					return domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
				}
				if err := bk.Reschedule(stay, totalPriceCents, now); err != nil {
					return err
				}
			}
		}

		if patch.Notes != nil {
			if err := bk.SetNotes(*patch.Notes, now); err != nil {
				return err
			}
		}

		if patch.Status != nil {
			if err := s.applyStatusChange(bk, *patch.Status, now); err != nil {
				return err
			}
		}

		bk.IncrementVersion(now)
		if err := uow.Bookings().Update(ctx, bk); err != nil {
			return err
		}
		updated = bk
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishUpdated(ctx, updated)
	result := toBookingDTO(updated)
	return &result, nil
}

// applyStatusChange routes a requested status through the state machine.
func (s *ReservationService) applyStatusChange(bk *bookingDomain.Booking, target bookingDomain.BookingStatus, now time.Time) error {
	switch target {
	case bk.Status():
		return nil
	case bookingDomain.StatusCancelled:
		return bk.Cancel(now)
	case bookingDomain.StatusCompleted:
		return bk.Complete(now)
	default:
		return domain.NewInvalidStateError(string(bk.Status()), string(target))
	}
}

// CancelBooking transitions a booking from active to cancelled. Irreversible;
// cancelling twice fails with AlreadyCancelled and applies nothing.
func (s *ReservationService) CancelBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	var cancelled *bookingDomain.Booking
	err := s.txm.InTx(ctx, func(ctx context.Context, uow bookingDomain.UnitOfWork) error {
		bk, err := uow.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if err := bk.Cancel(now); err != nil {
			return err
		}

		bk.IncrementVersion(now)
		if err := uow.Bookings().Update(ctx, bk); err != nil {
			return err
		}
		cancelled = bk
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking cancelled", zap.String("booking_id", bookingID.String()))
	s.publishCancelled(ctx, cancelled)

	result := toBookingDTO(cancelled)
	return &result, nil
}

// GetBooking retrieves a single booking by ID.
func (s *ReservationService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetRoomBookings retrieves all bookings for a room.
func (s *ReservationService) GetRoomBookings(ctx context.Context, roomID uuid.UUID) ([]BookingDTO, error) {
	bookings, err := s.bookings.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(bookings), nil
}

// GetClientBookings retrieves all bookings for a client.
func (s *ReservationService) GetClientBookings(ctx context.Context, clientID uuid.UUID) ([]BookingDTO, error) {
	bookings, err := s.bookings.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(bookings), nil
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *ReservationService) ListAllBookings(ctx context.Context, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *ReservationService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{TotalBookings: total, ByStatus: counts}, nil
}

// DeleteBooking hard-deletes a booking (admin operation, bypasses the
// lifecycle state machine).
func (s *ReservationService) DeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return err
	}
	s.logger.Info("booking deleted", zap.String("booking_id", bookingID.String()))
	return nil
}

// CompleteDueStays marks active bookings whose stay has ended as completed.
// Invoked periodically by the checkout sweeper. Returns how many bookings
// were completed.
func (s *ReservationService) CompleteDueStays(ctx context.Context) (int, error) {
	today := bookingDomain.TruncateToDay(s.clock.Now())

	due, err := s.bookings.FindDueForCompletion(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to find due bookings: %w", err)
	}

	completed := 0
	for _, bk := range due {
		now := s.clock.Now()
		if err := bk.Complete(now); err != nil {
			continue
		}
		bk.IncrementVersion(now)
		if err := s.bookings.Update(ctx, bk); err != nil {
			s.logger.Warn("failed to complete booking",
				zap.String("booking_id", bk.ID().String()),
				zap.Error(err),
			)
			continue
		}
		completed++
		s.publishCompleted(ctx, bk)
	}
	return completed, nil
}

// --- Helpers ---

func parseStay(checkIn, checkOut string) (bookingDomain.DateRange, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return bookingDomain.DateRange{}, domain.NewValidationError("invalid check-in date, expected YYYY-MM-DD")
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return bookingDomain.DateRange{}, domain.NewValidationError("invalid check-out date, expected YYYY-MM-DD")
	}
	return bookingDomain.NewDateRange(in, out)
}

func parsePatch(req UpdateBookingRequest) (bookingDomain.Patch, error) {
	var patch bookingDomain.Patch

	if req.CheckInDate != nil {
		t, err := time.Parse(dateLayout, *req.CheckInDate)
		if err != nil {
			return patch, domain.NewValidationError("invalid check-in date, expected YYYY-MM-DD")
		}
		patch.CheckIn = &t
	}
	if req.CheckOutDate != nil {
		t, err := time.Parse(dateLayout, *req.CheckOutDate)
		if err != nil {
			return patch, domain.NewValidationError("invalid check-out date, expected YYYY-MM-DD")
		}
		patch.CheckOut = &t
	}
	if req.Status != nil {
		status, err := bookingDomain.ParseBookingStatus(*req.Status)
		if err != nil {
			return patch, domain.NewValidationError(err.Error())
		}
		patch.Status = &status
	}
	patch.Notes = req.Notes

	return patch, nil
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:              bk.ID(),
		RoomID:          bk.RoomID(),
		ClientID:        bk.ClientID(),
		CheckInDate:     bk.Stay().CheckIn().Format(dateLayout),
		CheckOutDate:    bk.Stay().CheckOut().Format(dateLayout),
		Nights:          bk.Stay().Nights(),
		TotalPriceCents: bk.TotalPriceCents(),
		Status:          string(bk.Status()),
		ClientWasVip:    bk.ClientWasVIP(),
		Notes:           bk.Notes(),
		CancelledAt:     bk.CancelledAt(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func (s *ReservationService) publishCreated(ctx context.Context, bk *bookingDomain.Booking) {
	s.publishEvent(ctx, events.BookingCreated, events.BookingCreatedEvent{
		BookingID:       bk.ID(),
		RoomID:          bk.RoomID(),
		ClientID:        bk.ClientID(),
		CheckInDate:     bk.Stay().CheckIn(),
		CheckOutDate:    bk.Stay().CheckOut(),
		TotalPriceCents: bk.TotalPriceCents(),
		ClientWasVIP:    bk.ClientWasVIP(),
		OccurredAt:      s.clock.Now(),
	})
}

func (s *ReservationService) publishUpdated(ctx context.Context, bk *bookingDomain.Booking) {
	s.publishEvent(ctx, events.BookingUpdated, events.BookingUpdatedEvent{
		BookingID:       bk.ID(),
		RoomID:          bk.RoomID(),
		CheckInDate:     bk.Stay().CheckIn(),
		CheckOutDate:    bk.Stay().CheckOut(),
		TotalPriceCents: bk.TotalPriceCents(),
		Status:          string(bk.Status()),
		OccurredAt:      s.clock.Now(),
	})
}

func (s *ReservationService) publishCancelled(ctx context.Context, bk *bookingDomain.Booking) {
	s.publishEvent(ctx, events.BookingCancelled, events.BookingCancelledEvent{
		BookingID:  bk.ID(),
		RoomID:     bk.RoomID(),
		ClientID:   bk.ClientID(),
		OccurredAt: s.clock.Now(),
	})
}

func (s *ReservationService) publishCompleted(ctx context.Context, bk *bookingDomain.Booking) {
	s.publishEvent(ctx, events.BookingCompleted, events.BookingCompletedEvent{
		BookingID:    bk.ID(),
		RoomID:       bk.RoomID(),
		ClientID:     bk.ClientID(),
		CheckOutDate: bk.Stay().CheckOut(),
		OccurredAt:   s.clock.Now(),
	})
}

func (s *ReservationService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.producer == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent("service-reservation", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicReservationEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
