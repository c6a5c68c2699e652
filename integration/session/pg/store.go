package pg

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authkit/core/session"
	"github.com/dmitrymomot/authkit/core/token"
	dbpg "github.com/dmitrymomot/authkit/integration/database/pg"
)

// Compile-time check that Store implements session.Store.
var _ session.Store = (*Store)(nil)

// ErrNilPool is returned when the store is created without a connection pool.
var ErrNilPool = errors.New("postgres connection pool is required")

// querier is the subset of pgx operations the store needs. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so every method can run inside a
// caller-provided transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements session.Store on PostgreSQL. Each session is one row in
// the sessions table with both encoded tokens in unique columns, so point
// lookups by either token are index scans and no two live sessions can
// share a token. When the context carries a transaction attached via
// pg.WithTx, all statements join it.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a session store backed by the given pool.
func New(pool *pgxpool.Pool) (*Store, error) {
	if pool == nil {
		return nil, ErrNilPool
	}
	return &Store{pool: pool}, nil
}

// db returns the caller's transaction when the context carries one,
// falling back to the pool.
func (s *Store) db(ctx context.Context) querier {
	if tx, ok := dbpg.TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

const sessionColumns = `id, user_id,
	access_token, access_type, access_subject, access_claims, access_issued, access_expiration,
	refresh_token, refresh_type, refresh_subject, refresh_claims, refresh_issued, refresh_expiration`

// Save inserts an unauthenticated session, assigning the ID the database
// generates, or updates the row of an authenticated one. Either way the
// write is a single statement, so both tokens and the session row commit
// atomically.
func (s *Store) Save(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return errors.Join(session.ErrStoreFailed, errors.New("session cannot be nil"))
	}

	access, err := newTokenRow(sess.Pair.Access())
	if err != nil {
		return errors.Join(session.ErrStoreFailed, err)
	}
	refresh, err := newTokenRow(sess.Pair.Refresh())
	if err != nil {
		return errors.Join(session.ErrStoreFailed, err)
	}

	if sess.ID == uuid.Nil {
		return s.insert(ctx, sess, access, refresh)
	}
	return s.update(ctx, sess, access, refresh)
}

func (s *Store) insert(ctx context.Context, sess *session.Session, access, refresh tokenRow) error {
	const q = `
		INSERT INTO sessions (
			user_id,
			access_token, access_type, access_subject, access_claims, access_issued, access_expiration,
			refresh_token, refresh_type, refresh_subject, refresh_claims, refresh_issued, refresh_expiration
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	var id uuid.UUID
	err := s.db(ctx).QueryRow(ctx, q,
		sess.UserID,
		access.encoded, access.typ, access.subject, access.claims, access.issued, access.expires,
		refresh.encoded, refresh.typ, refresh.subject, refresh.claims, refresh.issued, refresh.expires,
	).Scan(&id)
	if err != nil {
		return errors.Join(session.ErrStoreFailed, err)
	}

	sess.ID = id
	return nil
}

func (s *Store) update(ctx context.Context, sess *session.Session, access, refresh tokenRow) error {
	const q = `
		UPDATE sessions SET
			access_token = $2, access_type = $3, access_subject = $4, access_claims = $5, access_issued = $6, access_expiration = $7,
			refresh_token = $8, refresh_type = $9, refresh_subject = $10, refresh_claims = $11, refresh_issued = $12, refresh_expiration = $13,
			updated_at = now()
		WHERE id = $1`

	tag, err := s.db(ctx).Exec(ctx, q,
		sess.ID,
		access.encoded, access.typ, access.subject, access.claims, access.issued, access.expires,
		refresh.encoded, refresh.typ, refresh.subject, refresh.claims, refresh.issued, refresh.expires,
	)
	if err != nil {
		return errors.Join(session.ErrStoreFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}

// GetByAccessToken returns the session holding the encoded access token.
func (s *Store) GetByAccessToken(ctx context.Context, encoded string) (*session.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE access_token = $1`
	return s.getOne(ctx, q, encoded)
}

// GetByRefreshToken returns the session holding the encoded refresh token.
func (s *Store) GetByRefreshToken(ctx context.Context, encoded string) (*session.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE refresh_token = $1`
	return s.getOne(ctx, q, encoded)
}

func (s *Store) getOne(ctx context.Context, query string, arg any) (*session.Session, error) {
	sess, err := scanSession(s.db(ctx).QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, errors.Join(session.ErrStoreFailed, err)
	}
	return sess, nil
}

// GetByUserID returns every session of the user, oldest first.
func (s *Store) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*session.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE user_id = $1 ORDER BY created_at`

	rows, err := s.db(ctx).Query(ctx, q, userID)
	if err != nil {
		return nil, errors.Join(session.ErrStoreFailed, err)
	}
	defer rows.Close()

	var sessions []*session.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, errors.Join(session.ErrStoreFailed, err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(session.ErrStoreFailed, err)
	}
	return sessions, nil
}

// Delete removes one session row.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM sessions WHERE id = $1`

	tag, err := s.db(ctx).Exec(ctx, q, id)
	if err != nil {
		return errors.Join(session.ErrStoreFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes every session of the user. Removing zero rows is
// not an error.
func (s *Store) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	const q = `DELETE FROM sessions WHERE user_id = $1`

	if _, err := s.db(ctx).Exec(ctx, q, userID); err != nil {
		return errors.Join(session.ErrStoreFailed, err)
	}
	return nil
}

// DeleteExpired removes sessions whose refresh token expired before the
// cutoff and returns the count of deleted rows.
func (s *Store) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const q = `DELETE FROM sessions WHERE refresh_expiration < $1`

	tag, err := s.db(ctx).Exec(ctx, q, before)
	if err != nil {
		return 0, errors.Join(session.ErrStoreFailed, err)
	}
	return tag.RowsAffected(), nil
}

// tokenRow flattens one token into the column values of its side of the
// sessions row. Claims travel as a JSONB blob.
type tokenRow struct {
	encoded string
	typ     string
	subject string
	claims  []byte
	issued  time.Time
	expires time.Time
}

func newTokenRow(t token.Token) (tokenRow, error) {
	claims, err := json.Marshal(t.Claims())
	if err != nil {
		return tokenRow{}, err
	}
	return tokenRow{
		encoded: t.Encoded(),
		typ:     t.Type().String(),
		subject: t.Subject(),
		claims:  claims,
		issued:  t.IssuedAt(),
		expires: t.ExpiresAt(),
	}, nil
}

// rowScanner covers pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*session.Session, error) {
	var (
		id, userID      uuid.UUID
		access, refresh tokenRow
	)
	if err := row.Scan(
		&id, &userID,
		&access.encoded, &access.typ, &access.subject, &access.claims, &access.issued, &access.expires,
		&refresh.encoded, &refresh.typ, &refresh.subject, &refresh.claims, &refresh.issued, &refresh.expires,
	); err != nil {
		return nil, err
	}

	pair, err := rehydratePair(access, refresh)
	if err != nil {
		return nil, err
	}
	return &session.Session{ID: id, UserID: userID, Pair: pair}, nil
}

// rehydratePair rebuilds the token pair from stored columns, revalidating
// every token invariant on the way out so a corrupted row cannot produce a
// malformed session.
func rehydratePair(access, refresh tokenRow) (token.Pair, error) {
	accessToken, err := rehydrateToken(access)
	if err != nil {
		return token.Pair{}, err
	}
	refreshToken, err := rehydrateToken(refresh)
	if err != nil {
		return token.Pair{}, err
	}
	return token.NewPair(accessToken, refreshToken)
}

func rehydrateToken(row tokenRow) (token.Token, error) {
	var raw map[string]any
	if err := json.Unmarshal(row.claims, &raw); err != nil {
		return token.Token{}, err
	}
	claims, err := token.NewClaims(raw)
	if err != nil {
		return token.Token{}, err
	}
	return token.New(row.encoded, token.Type(row.typ), row.subject, claims, row.issued, row.expires)
}
