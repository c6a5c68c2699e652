package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Sweeper periodically deletes sessions whose refresh token has expired.
// It only touches the durable store; index entries age out by TTL.
type Sweeper struct {
	store    Store
	interval time.Duration
	logger   *slog.Logger
	ticker   *time.Ticker

	mu              sync.RWMutex
	ctx             context.Context
	cancel          context.CancelFunc
	wg              sync.WaitGroup
	shutdownTimeout time.Duration

	// Observability metrics
	sweeps         atomic.Int64
	sessionsPurged atomic.Int64
	activeSweeps   atomic.Int32
}

// SweeperStats provides observability metrics for monitoring and debugging.
type SweeperStats struct {
	Sweeps         int64 // Total sweep runs since start
	SessionsPurged int64 // Total expired sessions removed
	ActiveSweeps   int32 // Number of sweep operations currently running
	IsRunning      bool  // Whether the sweeper is currently running
}

// NewSweeper creates an expiry sweeper over the given store.
func NewSweeper(store Store, opts ...SweeperOption) (*Sweeper, error) {
	if store == nil {
		return nil, ErrMissingStore
	}

	options := &sweeperOptions{
		interval:        15 * time.Minute,
		shutdownTimeout: 30 * time.Second,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Sweeper{
		store:           store,
		interval:        options.interval,
		shutdownTimeout: options.shutdownTimeout,
		logger:          options.logger,
	}, nil
}

// NewSweeperFromConfig creates a Sweeper with the purge interval from
// Config. Additional options override config values.
func NewSweeperFromConfig(cfg Config, store Store, opts ...SweeperOption) (*Sweeper, error) {
	allOpts := append([]SweeperOption{
		WithSweepInterval(cfg.PurgeInterval),
	}, opts...)

	return NewSweeper(store, allOpts...)
}

// Start begins periodic sweeping and blocks until the context is
// cancelled. It sweeps once immediately, then on every interval tick.
// Use Run() for errgroup composition or call Start in a goroutine.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return fmt.Errorf("sweeper already started")
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.ticker = time.NewTicker(s.interval)
	s.mu.Unlock()

	defer s.ticker.Stop()

	s.logger.InfoContext(s.ctx, "session sweeper started",
		slog.Duration("interval", s.interval))

	s.sweepWithWait()

	for {
		select {
		case <-s.ctx.Done():
			s.logger.InfoContext(context.Background(), "session sweeper stopping")
			return s.ctx.Err()
		case <-s.ticker.C:
			s.sweepWithWait()
		}
	}
}

// Stop gracefully shuts down the sweeper, waiting up to the shutdown
// timeout for an in-flight sweep to finish.
func (s *Sweeper) Stop() error {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return fmt.Errorf("sweeper not started")
	}
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	cancel()

	ctx, ctxCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer ctxCancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.InfoContext(context.Background(), "session sweeper stopped cleanly")
		return nil
	case <-ctx.Done():
		s.logger.WarnContext(context.Background(), "session sweeper shutdown timeout exceeded",
			slog.Duration("timeout", s.shutdownTimeout))
		return fmt.Errorf("shutdown timeout exceeded after %s", s.shutdownTimeout)
	}
}

// Run provides errgroup compatibility for coordinated lifecycle
// management. The returned function starts the sweeper, watches the
// context, and shuts down gracefully on cancellation.
func (s *Sweeper) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			_ = s.Stop() // Ignore stop error in normal shutdown
			<-errCh      // Wait for Start() to exit
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// sweepWithWait tracks the sweep with the WaitGroup. The running check and
// wg.Add must happen under the same lock, otherwise Stop() might wait on
// an incomplete count.
func (s *Sweeper) sweepWithWait() {
	s.mu.RLock()
	if s.cancel == nil {
		s.mu.RUnlock()
		return
	}
	s.wg.Add(1)
	s.mu.RUnlock()

	defer s.wg.Done()

	s.activeSweeps.Add(1)
	defer s.activeSweeps.Add(-1)

	// context.Background() so an in-flight sweep is not cut off mid-delete
	// when the sweeper context is cancelled.
	s.sweep(context.Background())
}

func (s *Sweeper) sweep(ctx context.Context) {
	count, err := s.store.DeleteExpired(ctx, time.Now())
	s.sweeps.Add(1)
	if err != nil {
		s.logger.ErrorContext(ctx, "expired session sweep failed",
			slog.String("error", err.Error()))
		return
	}

	if count > 0 {
		s.sessionsPurged.Add(count)
		s.logger.InfoContext(ctx, "expired sessions purged",
			slog.Int64("count", count))
	}
}

// Stats returns current sweeper statistics. Thread-safe; callable at any
// time, including before Start.
func (s *Sweeper) Stats() SweeperStats {
	s.mu.RLock()
	isRunning := s.cancel != nil
	s.mu.RUnlock()

	return SweeperStats{
		Sweeps:         s.sweeps.Load(),
		SessionsPurged: s.sessionsPurged.Load(),
		ActiveSweeps:   s.activeSweeps.Load(),
		IsRunning:      isRunning,
	}
}

// Healthcheck validates that the sweeper is running. The returned error
// can be checked with errors.Is against ErrSweeperNotRunning.
func (s *Sweeper) Healthcheck(ctx context.Context) error {
	if !s.Stats().IsRunning {
		return errors.Join(ErrHealthcheckFailed, ErrSweeperNotRunning)
	}
	return nil
}
