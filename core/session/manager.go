package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/core/credentials"
	"github.com/dmitrymomot/authkit/core/token"
)

const (
	defaultStoreTimeout = 5 * time.Second
	defaultIndexTimeout = 2 * time.Second
)

// Codec mints and verifies the typed tokens the manager hands out.
// *token.Codec satisfies it.
type Codec interface {
	IssueAccess(subject string, role token.Role) (token.Token, error)
	IssueRefresh(subject string, role token.Role) (token.Token, error)
	Decode(encoded string) (token.Token, error)
}

// Manager orchestrates the session lifecycle across the codec, the durable
// store, and the fast token index. It holds no mutable state of its own;
// every method is safe for concurrent use. Concurrent refreshes of the
// same session serialize on the durable row and the last writer wins.
type Manager struct {
	codec        Codec
	store        Store
	index        TokenIndex
	verifier     credentials.Verifier
	log          *slog.Logger
	storeTimeout time.Duration
	indexTimeout time.Duration
}

// NewManager wires the session orchestrator. Codec, store, and index are
// required; a credentials verifier is only needed when SignIn is used.
func NewManager(codec Codec, store Store, index TokenIndex, opts ...Option) (*Manager, error) {
	if codec == nil {
		return nil, ErrMissingCodec
	}
	if store == nil {
		return nil, ErrMissingStore
	}
	if index == nil {
		return nil, ErrMissingIndex
	}

	m := &Manager{
		codec:        codec,
		store:        store,
		index:        index,
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
		storeTimeout: defaultStoreTimeout,
		indexTimeout: defaultIndexTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NewManagerFromConfig creates a Manager with the timeouts from Config.
// Additional options override config values.
func NewManagerFromConfig(cfg Config, codec Codec, store Store, index TokenIndex, opts ...Option) (*Manager, error) {
	allOpts := append([]Option{
		WithStoreTimeout(cfg.StoreTimeout),
		WithIndexTimeout(cfg.IndexTimeout),
	}, opts...)

	return NewManager(codec, store, index, allOpts...)
}

// SignIn verifies the credentials through the configured verifier and
// grants a session for the returned principal. The verifier is invoked
// exactly once and its failures pass through untouched, so callers can
// match credentials.ErrBadCredentials directly.
func (m *Manager) SignIn(ctx context.Context, username, password string) (*Session, error) {
	if m.verifier == nil {
		return nil, ErrNoVerifier
	}

	principal, err := m.verifier.Verify(ctx, username, password)
	if err != nil {
		return nil, err
	}

	return m.Grant(ctx, principal.UserID, principal.Role)
}

// Grant mints a token pair for the user and records the session, durable
// store first so an index failure leaves the session recoverable. When the
// index write fails after the durable commit, the row is rolled back
// best-effort; an orphan left behind is removed later by the sweeper.
// Every failure surfaces as ErrGrantFailed with the cause joined in.
func (m *Manager) Grant(ctx context.Context, userID uuid.UUID, role token.Role) (*Session, error) {
	if userID == uuid.Nil {
		return nil, errors.Join(ErrGrantFailed, ErrMissingUserID)
	}

	subject := userID.String()
	access, err := m.codec.IssueAccess(subject, role)
	if err != nil {
		return nil, errors.Join(ErrGrantFailed, err)
	}
	refresh, err := m.codec.IssueRefresh(subject, role)
	if err != nil {
		return nil, errors.Join(ErrGrantFailed, err)
	}
	pair, err := token.NewPair(access, refresh)
	if err != nil {
		return nil, errors.Join(ErrGrantFailed, err)
	}

	sess, err := New(userID, pair)
	if err != nil {
		return nil, errors.Join(ErrGrantFailed, err)
	}

	if err := m.saveSession(ctx, sess); err != nil {
		return nil, errors.Join(ErrGrantFailed, err)
	}

	if err := m.indexPair(ctx, sess.Pair); err != nil {
		m.rollbackGrant(sess)
		return nil, errors.Join(ErrGrantFailed, err)
	}

	return sess, nil
}

// VerifyAccess validates an encoded access token and returns its live
// session. Read-only and idempotent.
func (m *Manager) VerifyAccess(ctx context.Context, encoded string) (*Session, error) {
	return m.verify(ctx, encoded, token.TypeAccess)
}

// VerifyRefresh validates an encoded refresh token and returns its live
// session. Read-only and idempotent.
func (m *Manager) VerifyRefresh(ctx context.Context, encoded string) (*Session, error) {
	return m.verify(ctx, encoded, token.TypeRefresh)
}

// verify runs decode, type assertion, index liveness, and the durable
// lookup in that order. Every failure mode comes back as ErrInvalidToken
// with the cause joined in: callers that probe with forged, expired, and
// revoked tokens all see the same sentinel.
func (m *Manager) verify(ctx context.Context, encoded string, expected token.Type) (*Session, error) {
	tok, err := m.codec.Decode(encoded)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if tok.Type() != expected {
		return nil, errors.Join(ErrInvalidToken, ErrUnexpectedTokenType)
	}

	live, err := m.tokenLive(ctx, expected, tok.Encoded())
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !live {
		return nil, errors.Join(ErrInvalidToken, ErrNotFound)
	}

	getCtx, cancel := m.storeContext(ctx)
	defer cancel()

	var sess *Session
	switch expected {
	case token.TypeAccess:
		sess, err = m.store.GetByAccessToken(getCtx, tok.Encoded())
	default:
		sess, err = m.store.GetByRefreshToken(getCtx, tok.Encoded())
	}
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	return sess, nil
}

// Refresh mints a new pair from the session's current tokens and rotates
// it in place: durable update first, then index delete of the old pair,
// then index save of the new one. A crash after the durable commit leaves
// the old pair live until its TTL; two briefly-valid pairs are preferred
// over a window where both are rejected.
//
// TODO: the index delete/save after the durable save is not compensated; a
// failure there leaves the old pair live until TTL. Closing the gap needs
// an outbox or a retry queue in front of the index.
func (m *Manager) Refresh(ctx context.Context, sess *Session) (*Session, error) {
	if !sess.Authenticated() {
		return nil, errors.Join(ErrRefreshFailed, ErrNotAuthenticated)
	}

	old := sess.Pair
	access, err := m.codec.IssueAccess(old.Access().Subject(), roleClaim(old.Access()))
	if err != nil {
		return nil, errors.Join(ErrRefreshFailed, err)
	}
	refresh, err := m.codec.IssueRefresh(old.Refresh().Subject(), roleClaim(old.Refresh()))
	if err != nil {
		return nil, errors.Join(ErrRefreshFailed, err)
	}
	pair, err := token.NewPair(access, refresh)
	if err != nil {
		return nil, errors.Join(ErrRefreshFailed, err)
	}

	if err := sess.Rotate(pair); err != nil {
		return nil, errors.Join(ErrRefreshFailed, err)
	}
	if err := m.saveSession(ctx, sess); err != nil {
		return nil, errors.Join(ErrRefreshFailed, err)
	}

	delCtx, cancel := m.indexContext(ctx)
	defer cancel()
	if err := m.index.Delete(delCtx, old); err != nil {
		return nil, errors.Join(ErrRefreshFailed, err)
	}
	if err := m.indexPair(ctx, sess.Pair); err != nil {
		return nil, errors.Join(ErrRefreshFailed, err)
	}

	return sess, nil
}

// Revoke deletes the durable session row; a row that is already gone
// counts as success, so revoking twice is safe. The index entries of the
// pair are dropped as well for immediate invalidation of the fast path.
func (m *Manager) Revoke(ctx context.Context, sess *Session) error {
	if !sess.Authenticated() {
		return errors.Join(ErrRevokeFailed, ErrNotAuthenticated)
	}

	delCtx, cancel := m.storeContext(ctx)
	defer cancel()
	if err := m.store.Delete(delCtx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrRevokeFailed, err)
	}

	if !sess.Pair.IsZero() {
		idxCtx, cancelIdx := m.indexContext(ctx)
		defer cancelIdx()
		if err := m.index.Delete(idxCtx, sess.Pair); err != nil {
			return errors.Join(ErrRevokeFailed, err)
		}
	}

	return nil
}

// RevokeAllForUser removes every session of the user from the durable
// store and drops the index entries of each known pair. Index entries that
// cannot be dropped age out by TTL; their errors are reported but do not
// undo the durable delete.
func (m *Manager) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return errors.Join(ErrRevokeFailed, ErrMissingUserID)
	}

	listCtx, cancel := m.storeContext(ctx)
	sessions, err := m.store.GetByUserID(listCtx, userID)
	cancel()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrRevokeFailed, err)
	}

	delCtx, cancelDel := m.storeContext(ctx)
	defer cancelDel()
	if err := m.store.DeleteByUserID(delCtx, userID); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrRevokeFailed, err)
	}

	var indexErrs []error
	for _, sess := range sessions {
		if sess.Pair.IsZero() {
			continue
		}
		idxCtx, cancelIdx := m.indexContext(ctx)
		err := m.index.Delete(idxCtx, sess.Pair)
		cancelIdx()
		if err != nil {
			indexErrs = append(indexErrs, err)
		}
	}
	if len(indexErrs) > 0 {
		return errors.Join(ErrRevokeFailed, errors.Join(indexErrs...))
	}

	return nil
}

// CleanupExpired removes sessions whose refresh token already expired and
// returns the count. The sweeper calls this on its interval; it is
// exported for manual runs.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	delCtx, cancel := m.storeContext(ctx)
	defer cancel()
	return m.store.DeleteExpired(delCtx, time.Now())
}

func (m *Manager) saveSession(ctx context.Context, sess *Session) error {
	saveCtx, cancel := m.storeContext(ctx)
	defer cancel()
	return m.store.Save(saveCtx, sess)
}

func (m *Manager) indexPair(ctx context.Context, pair token.Pair) error {
	idxCtx, cancel := m.indexContext(ctx)
	defer cancel()
	return m.index.Save(idxCtx, pair)
}

// rollbackGrant deletes the durable row written by a grant whose index
// write failed. The grant context may already be dead, so compensation
// runs on its own context.
func (m *Manager) rollbackGrant(sess *Session) {
	ctx := context.Background()
	if m.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.storeTimeout)
		defer cancel()
	}

	if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
		m.log.ErrorContext(ctx, "session orphaned after index failure, sweeper will remove it",
			slog.String("session_id", sess.ID.String()),
			slog.String("user_id", sess.UserID.String()),
			slog.String("error", err.Error()))
	}
}

func (m *Manager) tokenLive(ctx context.Context, typ token.Type, encoded string) (bool, error) {
	idxCtx, cancel := m.indexContext(ctx)
	defer cancel()
	if typ == token.TypeAccess {
		return m.index.AccessExists(idxCtx, encoded)
	}
	return m.index.RefreshExists(idxCtx, encoded)
}

func (m *Manager) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, m.storeTimeout)
}

func (m *Manager) indexContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.indexTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, m.indexTimeout)
}

// roleClaim extracts the role a token carries, or the empty role when the
// claim is absent or unknown.
func roleClaim(t token.Token) token.Role {
	role, ok := t.Role()
	if !ok {
		return ""
	}
	return role
}
