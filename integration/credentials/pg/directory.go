package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authkit/core/credentials"
	"github.com/dmitrymomot/authkit/core/token"
	dbpg "github.com/dmitrymomot/authkit/integration/database/pg"
)

// Compile-time check that Directory implements credentials.UserDirectory.
var _ credentials.UserDirectory = (*Directory)(nil)

// ErrNilPool is returned when the directory is created without a connection pool.
var ErrNilPool = errors.New("postgres connection pool is required")

// ErrDirectoryFailed wraps database failures other than an absent user.
var ErrDirectoryFailed = errors.New("user directory lookup failed")

// Directory implements credentials.UserDirectory on PostgreSQL. Lookups
// are case-insensitive over the username column. When the context carries
// a transaction attached via pg.WithTx, the query joins it.
type Directory struct {
	pool *pgxpool.Pool
}

// New creates a user directory backed by the given pool.
func New(pool *pgxpool.Pool) (*Directory, error) {
	if pool == nil {
		return nil, ErrNilPool
	}
	return &Directory{pool: pool}, nil
}

// FindByUsername returns the user record carrying the username. An absent
// user reports credentials.ErrUserNotFound; a row holding a role outside
// the known set fails hard, since a principal cannot be built from it.
func (d *Directory) FindByUsername(ctx context.Context, username string) (credentials.DirectoryUser, error) {
	const q = `
		SELECT id, username, password_hash, role
		FROM users
		WHERE lower(username) = lower($1)`

	var (
		id           uuid.UUID
		storedName   string
		passwordHash string
		rawRole      string
	)

	row := d.db(ctx).QueryRow(ctx, q, username)
	if err := row.Scan(&id, &storedName, &passwordHash, &rawRole); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return credentials.DirectoryUser{}, credentials.ErrUserNotFound
		}
		return credentials.DirectoryUser{}, errors.Join(ErrDirectoryFailed, err)
	}

	role, err := token.ParseRole(rawRole)
	if err != nil {
		return credentials.DirectoryUser{}, errors.Join(ErrDirectoryFailed, fmt.Errorf("user %s: %w", id, err))
	}

	return credentials.DirectoryUser{
		ID:           id,
		Username:     storedName,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}

func (d *Directory) db(ctx context.Context) querier {
	if tx, ok := dbpg.TxFromContext(ctx); ok {
		return tx
	}
	return d.pool
}

// querier is the subset of pgx operations the directory needs. Both
// *pgxpool.Pool and pgx.Tx satisfy it.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
