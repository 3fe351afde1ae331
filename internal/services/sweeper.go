package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"commons-backend/internal/logger"
)

const sweepTimeout = 30 * time.Second

type expiryStore interface {
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}

// ExpirySweeper brings the stored status of lapsed check-ins in line with
// their computed window. Reads never depend on it having run.
type ExpirySweeper struct {
	store    expiryStore
	interval time.Duration
	now      func() time.Time
	stopChan chan struct{}
}

func NewExpirySweeper(store expiryStore, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{
		store:    store,
		interval: interval,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

func (s *ExpirySweeper) Start() {
	if s.store == nil || s.interval <= 0 {
		return
	}

	go s.loop()
	logger.Logger.Info("Expiry sweeper started", zap.Duration("interval", s.interval))
}

func (s *ExpirySweeper) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
		close(s.stopChan)
	}
}

// SweepOnce runs a single reconciliation pass.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) (int64, error) {
	now := s.now().UTC()

	n, err := s.store.MarkExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Logger.Info("Marked lapsed check-ins expired", zap.Int64("count", n), zap.Time("as_of", now))
	}
	return n, nil
}

func (s *ExpirySweeper) loop() {
	// Run on startup as well as by interval.
	s.run()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.run()
		}
	}
}

func (s *ExpirySweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.SweepOnce(ctx); err != nil {
		logger.Logger.Error("Expiry sweep failed", zap.Error(err))
	}
}
