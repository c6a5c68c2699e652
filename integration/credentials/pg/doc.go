// Package pg provides the PostgreSQL-backed implementation of the
// credentials.UserDirectory interface.
//
// The directory reads user records from the users table. Username matching
// is case-insensitive, backed by a unique index on lower(username), so two
// users cannot differ only in letter case and lookups stay index scans.
//
// Basic usage:
//
//	import (
//		"github.com/dmitrymomot/authkit/core/credentials"
//		credentialspg "github.com/dmitrymomot/authkit/integration/credentials/pg"
//	)
//
//	directory, err := credentialspg.New(pool)
//	if err != nil {
//		// Handle configuration error
//	}
//
//	verifier, err := credentials.NewDirectoryVerifier(directory)
//
// An absent user is reported as credentials.ErrUserNotFound, which the
// directory verifier folds into credentials.ErrBadCredentials. Database
// failures are joined with ErrDirectoryFailed and pass through the
// verifier unchanged, so callers can tell an authentication failure from
// an infrastructure one. A stored role outside the known set also fails
// the lookup: no principal can be built from it, and folding it into a
// bad-credentials answer would hide a data problem.
package pg
