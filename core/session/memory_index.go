package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/authkit/core/token"
)

// MemoryIndex is an in-memory TokenIndex for testing and local development.
// Entries expire at the token's own expiry, mirroring the TTL behavior of
// the Redis-backed index. Safe for concurrent use.
type MemoryIndex struct {
	mu      sync.RWMutex
	access  map[string]time.Time
	refresh map[string]time.Time
}

// NewMemoryIndex creates an empty in-memory token index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		access:  make(map[string]time.Time),
		refresh: make(map[string]time.Time),
	}
}

// Save records both tokens of the pair, keyed by encoded form, with the
// token expiry as the entry deadline.
func (ix *MemoryIndex) Save(ctx context.Context, pair token.Pair) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.access[pair.Access().Encoded()] = pair.Access().ExpiresAt()
	ix.refresh[pair.Refresh().Encoded()] = pair.Refresh().ExpiresAt()
	return nil
}

// Delete drops both entries of the pair. Deleting an absent pair is a no-op.
func (ix *MemoryIndex) Delete(ctx context.Context, pair token.Pair) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	delete(ix.access, pair.Access().Encoded())
	delete(ix.refresh, pair.Refresh().Encoded())
	return nil
}

// AccessExists reports whether the encoded access token is indexed and its
// entry deadline has not passed.
func (ix *MemoryIndex) AccessExists(ctx context.Context, encoded string) (bool, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	deadline, ok := ix.access[encoded]
	return ok && time.Now().Before(deadline), nil
}

// RefreshExists reports whether the encoded refresh token is indexed and
// its entry deadline has not passed.
func (ix *MemoryIndex) RefreshExists(ctx context.Context, encoded string) (bool, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	deadline, ok := ix.refresh[encoded]
	return ok && time.Now().Before(deadline), nil
}
