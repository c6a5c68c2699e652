package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/authkit/core/credentials"
)

// Option configures a Manager.
type Option func(*Manager)

// WithVerifier attaches a credentials verifier, enabling SignIn.
func WithVerifier(v credentials.Verifier) Option {
	return func(m *Manager) {
		if v != nil {
			m.verifier = v
		}
	}
}

// WithLogger sets the logger for orchestration warnings such as orphaned
// sessions. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithStoreTimeout bounds each durable store call. Zero disables the
// bound; negative values are ignored.
func WithStoreTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.storeTimeout = d
		}
	}
}

// WithIndexTimeout bounds each fast-index call. Zero disables the bound;
// negative values are ignored.
func WithIndexTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.indexTimeout = d
		}
	}
}
