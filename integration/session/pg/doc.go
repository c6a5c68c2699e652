// Package pg provides the PostgreSQL-backed implementation of the
// session.Store interface.
//
// Each session is persisted as a single row in the sessions table with the
// full token pair flattened into per-token columns: encoded form, type,
// subject, claims (JSONB), issued and expiration timestamps. Both encoded
// token columns carry unique indexes, so lookups by either token are index
// scans and the database itself guarantees that no two live sessions share
// a token value.
//
// Basic usage:
//
//	import (
//		"github.com/dmitrymomot/authkit/integration/database/pg"
//		sessionpg "github.com/dmitrymomot/authkit/integration/session/pg"
//	)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		// Handle connection error
//	}
//
//	store, err := sessionpg.New(pool)
//	if err != nil {
//		// Handle configuration error
//	}
//
//	mgr, err := session.NewManager(codec, store, index)
//
// # Row Mapping
//
// Tokens are revalidated when read back: the claims blob is decoded, the
// token constructors re-check the token_use claim against the stored type,
// and a corrupted row surfaces as session.ErrStoreFailed instead of a
// malformed session. Integer claim values survive the JSONB round trip
// unchanged because the claims constructor normalizes the numeric types
// JSON decoding produces.
//
// # Transactions
//
// Every method checks the context for a transaction attached via pg.WithTx
// and joins it when present, which lets callers make a session write atomic
// with their own domain writes:
//
//	tx, err := pool.Begin(ctx)
//	if err != nil {
//		return err
//	}
//	defer tx.Rollback(ctx)
//
//	ctx = pg.WithTx(ctx, tx)
//	if _, err := mgr.Grant(ctx, userID, token.RoleUser); err != nil {
//		return err
//	}
//	return tx.Commit(ctx)
//
// # Error Mapping
//
// Absent rows are reported as session.ErrNotFound; every other database
// failure, including unique violations on the token columns, is joined
// with session.ErrStoreFailed so callers can match either the domain
// sentinel or the underlying pgx error.
package pg
