package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrFailedToOpenDBConnection is returned when the pool cannot be
	// created or the database does not answer pings within the retry budget.
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")

	// ErrEmptyConnectionString is returned when the config carries no DSN.
	ErrEmptyConnectionString = errors.New("empty postgres connection string, use PG_CONN_URL env var")

	// ErrHealthcheckFailed is returned when the connectivity probe fails.
	ErrHealthcheckFailed = errors.New("healthcheck failed, connection is not available")

	// ErrFailedToParseDBConfig is returned when the DSN cannot be parsed.
	ErrFailedToParseDBConfig = errors.New("failed to parse db config")

	// ErrFailedToApplyMigrations is returned when goose cannot apply the
	// pending migrations.
	ErrFailedToApplyMigrations = errors.New("failed to apply migrations")

	// ErrMigrationsDirNotFound is returned when the migrations directory
	// does not exist; callers may treat it as a skip.
	ErrMigrationsDirNotFound = errors.New("migrations directory not found")

	// ErrMigrationPathNotProvided is returned when the config carries no
	// migrations path.
	ErrMigrationPathNotProvided = errors.New("migration path not provided")
)

// PostgreSQL error codes used for classification.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// IsNotFoundError reports whether err means no rows matched.
func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKeyError reports whether err is a unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolationError reports whether err is a referential
// integrity violation.
func IsForeignKeyViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// IsTxClosedError reports whether err came from using an already closed
// transaction.
func IsTxClosedError(err error) bool {
	return errors.Is(err, pgx.ErrTxClosed)
}
