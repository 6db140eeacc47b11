package booking

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultHoldTTL is how long a PENDING hold keeps stock reserved before the
// sweeper cancels it. Overridable via HOLD_TTL_MINUTES.
const DefaultHoldTTL = 30 * time.Minute

// Sweeper periodically expires stale PENDING holds so abandoned checkouts
// hand their stock back.
type Sweeper struct {
	service  Service
	ttl      time.Duration
	interval time.Duration
	log      *zap.Logger
}

// NewSweeper creates a sweeper that runs every interval and cancels PENDING
// bookings older than ttl.
func NewSweeper(service Service, ttl, interval time.Duration, log *zap.Logger) *Sweeper {
	if ttl <= 0 {
		ttl = DefaultHoldTTL
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{service: service, ttl: ttl, interval: interval, log: log}
}

// Run blocks until ctx is cancelled, sweeping on every tick.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("hold sweeper started",
		zap.Duration("ttl", s.ttl),
		zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("hold sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.service.ExpireHolds(ctx, s.ttl)
	if err != nil {
		s.log.Error("hold sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("expired pending holds", zap.Int("count", n))
	}
}
