package application

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CheckoutSweeper periodically completes active bookings whose stay has
// ended. Completion is the only path to the completed status; no client
// request triggers it.
type CheckoutSweeper struct {
	service  *ReservationService
	interval time.Duration
	logger   *zap.Logger
}

// NewCheckoutSweeper creates a new CheckoutSweeper.
func NewCheckoutSweeper(service *ReservationService, interval time.Duration, logger *zap.Logger) *CheckoutSweeper {
	return &CheckoutSweeper{service: service, interval: interval, logger: logger}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (s *CheckoutSweeper) Run(ctx context.Context) {
	s.logger.Info("checkout sweeper started", zap.Duration("interval", s.interval))

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("checkout sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *CheckoutSweeper) sweep(ctx context.Context) {
	completed, err := s.service.CompleteDueStays(ctx)
	if err != nil {
		s.logger.Error("checkout sweep failed", zap.Error(err))
		return
	}
	if completed > 0 {
		s.logger.Info("checkout sweep completed bookings", zap.Int("count", completed))
	}
}
