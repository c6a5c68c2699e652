package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/core/token"
)

// Session ties a user to their current token pair. A freshly granted
// session is unauthenticated (no ID); the durable store assigns the ID on
// first save, after which the session counts as authenticated. UserID never
// changes over the session's life; the pair is replaced on rotation.
type Session struct {
	// ID is the durable store identity. uuid.Nil until first save.
	ID uuid.UUID

	// UserID identifies the user the pair was minted for. Immutable.
	UserID uuid.UUID

	// Pair holds the current access and refresh tokens.
	Pair token.Pair
}

// New creates an unauthenticated session for the user with a freshly
// minted token pair. The durable store assigns the ID on first save.
func New(userID uuid.UUID, pair token.Pair) (*Session, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUserID
	}
	if pair.IsZero() {
		return nil, ErrMissingTokenPair
	}
	return &Session{UserID: userID, Pair: pair}, nil
}

// Authenticated reports whether the durable store has assigned an ID.
func (s *Session) Authenticated() bool {
	return s != nil && s.ID != uuid.Nil
}

// Rotate swaps in a new token pair, keeping the ID and UserID.
func (s *Session) Rotate(pair token.Pair) error {
	if pair.IsZero() {
		return ErrMissingTokenPair
	}
	s.Pair = pair
	return nil
}

// ExpiresAt returns the instant the session stops being refreshable, which
// is the refresh token's expiry.
func (s *Session) ExpiresAt() time.Time {
	return s.Pair.Refresh().ExpiresAt()
}

// IsExpired reports whether the refresh token has expired.
func (s *Session) IsExpired() bool {
	return s.Pair.Refresh().IsExpired()
}

// Equal compares sessions by identity: two authenticated sessions are
// equal when their IDs match, and an unauthenticated session is equal only
// to itself.
func (s *Session) Equal(other *Session) bool {
	if s == nil || other == nil {
		return false
	}
	if s.Authenticated() && other.Authenticated() {
		return s.ID == other.ID
	}
	return s == other
}
