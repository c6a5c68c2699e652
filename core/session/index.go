package session

import (
	"context"

	"github.com/dmitrymomot/authkit/core/token"
)

// TokenIndex is the fast liveness index over encoded tokens. Entries carry
// a TTL matching the token expiry, so the index is authoritative only in
// the negative: absence means not live, while presence still needs the
// durable store's confirmation. Implementations wrap failures with
// ErrIndexFailed.
type TokenIndex interface {
	// Save indexes both tokens of the pair atomically.
	Save(ctx context.Context, pair token.Pair) error
	// Delete drops both index entries of the pair atomically.
	Delete(ctx context.Context, pair token.Pair) error
	// AccessExists reports whether the encoded access token is live.
	AccessExists(ctx context.Context, encoded string) (bool, error)
	// RefreshExists reports whether the encoded refresh token is live.
	RefreshExists(ctx context.Context, encoded string) (bool, error)
}
