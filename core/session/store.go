package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the durable session repository. Implementations must handle
// concurrent access safely, return ErrNotFound for absent rows, and wrap
// every other failure with ErrStoreFailed.
type Store interface {
	// Save inserts an unauthenticated session, assigning its ID, or
	// updates the row of an authenticated one. The write is atomic.
	Save(ctx context.Context, sess *Session) error
	// GetByAccessToken returns the session holding the encoded access token.
	GetByAccessToken(ctx context.Context, encoded string) (*Session, error)
	// GetByRefreshToken returns the session holding the encoded refresh token.
	GetByRefreshToken(ctx context.Context, encoded string) (*Session, error)
	// GetByUserID returns every session of the user.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Session, error)
	// Delete removes one session row.
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByUserID removes every session of the user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	// DeleteExpired removes sessions whose refresh token expired before
	// the cutoff and returns the count of deleted sessions.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
