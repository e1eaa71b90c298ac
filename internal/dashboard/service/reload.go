package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
)

// DirectoryLoader is the write side of the user directory.
type DirectoryLoader interface {
	Load(ctx context.Context, n int) ([]domain.UserRecord, error)
}

// ReloadService refreshes the directory from its remote source when
// triggered (SIGHUP) and, if Interval is positive, on a timer. A failed
// reload leaves the current directory in place.
type ReloadService struct {
	Directory DirectoryLoader
	BatchSize int
	Interval  time.Duration
	Logger    *slog.Logger

	trigger chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started atomic.Bool

	// ctx is cancelled by Stop so an in-flight reload does not outlive it.
	ctx    context.Context
	cancel context.CancelFunc
}

func NewReloadService(dir DirectoryLoader, batchSize int, interval time.Duration, logger *slog.Logger) *ReloadService {
	ctx, cancel := context.WithCancel(context.Background())
	return &ReloadService{
		Directory: dir,
		BatchSize: batchSize,
		Interval:  interval,
		Logger:    logger,
		trigger:   make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *ReloadService) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run()
	s.Logger.Info("reload service started", "interval", s.Interval)
}

// Stop cancels an in-flight reload and waits for it to return. Stopping a
// service that was never started is a no-op.
func (s *ReloadService) Stop() {
	if !s.started.Load() {
		return
	}
	close(s.stopCh)
	s.cancel()
	<-s.doneCh
	s.Logger.Info("reload service stopped")
}

// Trigger requests a reload. Requests made while one is pending coalesce;
// it reports whether this call queued a new one.
func (s *ReloadService) Trigger() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *ReloadService) run() {
	defer close(s.doneCh)

	var tick <-chan time.Time
	if s.Interval > 0 {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-s.trigger:
			s.reload("signal")
		case <-tick:
			s.reload("interval")
		case <-s.stopCh:
			return
		}
	}
}

func (s *ReloadService) reload(reason string) {
	s.Logger.Info("reloading user directory", "reason", reason)
	users, err := s.Directory.Load(s.ctx, s.BatchSize)
	if err != nil {
		s.Logger.Error("directory reload failed, keeping previous directory", "reason", reason, "error", err)
		return
	}
	s.Logger.Info("directory reloaded", "reason", reason, "size", len(users))
}
