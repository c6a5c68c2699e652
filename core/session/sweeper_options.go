package session

import (
	"log/slog"
	"time"
)

type sweeperOptions struct {
	interval        time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// SweeperOption configures a Sweeper.
type SweeperOption func(*sweeperOptions)

// WithSweepInterval sets how often expired sessions are purged.
// Non-positive values are ignored.
func WithSweepInterval(d time.Duration) SweeperOption {
	return func(o *sweeperOptions) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithSweeperShutdownTimeout sets how long Stop waits for an in-flight
// sweep. Non-positive values are ignored.
func WithSweeperShutdownTimeout(d time.Duration) SweeperOption {
	return func(o *sweeperOptions) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithSweeperLogger sets the sweeper's logger. Defaults to a no-op logger.
func WithSweeperLogger(log *slog.Logger) SweeperOption {
	return func(o *sweeperOptions) {
		if log != nil {
			o.logger = log
		}
	}
}
