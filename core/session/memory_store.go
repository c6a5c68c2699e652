package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store in process memory for testing and local
// development. Sessions are copied on the way in and out, so callers never
// share mutable state with the store. Like the Postgres store, it enforces
// token uniqueness and assigns IDs on insert.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	// Indexes for token point lookups
	byAccess  map[string]uuid.UUID
	byRefresh map[string]uuid.UUID
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions:  make(map[uuid.UUID]*Session),
		byAccess:  make(map[string]uuid.UUID),
		byRefresh: make(map[string]uuid.UUID),
	}
}

// Save inserts an unauthenticated session, assigning its ID, or updates
// the stored row of an authenticated one.
func (ms *MemoryStore) Save(ctx context.Context, sess *Session) error {
	if sess == nil {
		return errors.Join(ErrStoreFailed, errors.New("session cannot be nil"))
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	access := sess.Pair.Access().Encoded()
	refresh := sess.Pair.Refresh().Encoded()

	if id, ok := ms.byAccess[access]; ok && id != sess.ID {
		return errors.Join(ErrStoreFailed, errors.New("access token already stored"))
	}
	if id, ok := ms.byRefresh[refresh]; ok && id != sess.ID {
		return errors.Join(ErrStoreFailed, errors.New("refresh token already stored"))
	}

	if sess.ID == uuid.Nil {
		sess.ID = uuid.New()
	} else if prev, ok := ms.sessions[sess.ID]; ok {
		delete(ms.byAccess, prev.Pair.Access().Encoded())
		delete(ms.byRefresh, prev.Pair.Refresh().Encoded())
	} else {
		return ErrNotFound
	}

	stored := *sess
	ms.sessions[sess.ID] = &stored
	ms.byAccess[access] = sess.ID
	ms.byRefresh[refresh] = sess.ID

	return nil
}

// GetByAccessToken returns a copy of the session holding the access token.
func (ms *MemoryStore) GetByAccessToken(ctx context.Context, encoded string) (*Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	id, ok := ms.byAccess[encoded]
	if !ok {
		return nil, ErrNotFound
	}
	return ms.sessionCopy(id)
}

// GetByRefreshToken returns a copy of the session holding the refresh token.
func (ms *MemoryStore) GetByRefreshToken(ctx context.Context, encoded string) (*Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	id, ok := ms.byRefresh[encoded]
	if !ok {
		return nil, ErrNotFound
	}
	return ms.sessionCopy(id)
}

// GetByUserID returns copies of every session of the user.
func (ms *MemoryStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var sessions []*Session
	for _, sess := range ms.sessions {
		if sess.UserID == userID {
			copyOf := *sess
			sessions = append(sessions, &copyOf)
		}
	}
	return sessions, nil
}

// Delete removes one session row.
func (ms *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	sess, ok := ms.sessions[id]
	if !ok {
		return ErrNotFound
	}
	ms.remove(sess)
	return nil
}

// DeleteByUserID removes every session of the user.
func (ms *MemoryStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, sess := range ms.sessions {
		if sess.UserID == userID {
			ms.remove(sess)
		}
	}
	return nil
}

// DeleteExpired removes sessions whose refresh token expired before the
// cutoff and returns the count.
func (ms *MemoryStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var count int64
	for _, sess := range ms.sessions {
		if sess.ExpiresAt().Before(before) {
			ms.remove(sess)
			count++
		}
	}
	return count, nil
}

// remove must be called with the write lock held.
func (ms *MemoryStore) remove(sess *Session) {
	delete(ms.byAccess, sess.Pair.Access().Encoded())
	delete(ms.byRefresh, sess.Pair.Refresh().Encoded())
	delete(ms.sessions, sess.ID)
}

// sessionCopy must be called with the read lock held.
func (ms *MemoryStore) sessionCopy(id uuid.UUID) (*Session, error) {
	sess, ok := ms.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copyOf := *sess
	return &copyOf, nil
}
