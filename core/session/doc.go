// Package session implements the JWT session lifecycle over a durable
// store and a fast token index.
//
// A session ties a user to a pair of typed JWTs: a short-lived access
// token presented on each request and a long-lived refresh token exchanged
// for a new pair. The durable store (Postgres in production) is the source
// of truth; the token index (Redis) answers liveness checks on the hot
// path and is authoritative only in the negative, since its entries expire
// by TTL and may be evicted early.
//
// # Core Components
//
// The package provides four main types:
//
//   - Session: user identity plus the current token pair
//   - Manager: orchestrates grant, verify, refresh, and revoke
//   - Store / TokenIndex: persistence ports implemented under integration/
//   - Sweeper: background purger for expired sessions
//
// # Basic Usage
//
// Wire a manager from a token codec and the two stores:
//
//	import (
//		"github.com/dmitrymomot/authkit/core/session"
//		"github.com/dmitrymomot/authkit/core/token"
//	)
//
//	codec, err := token.NewCodecFromConfig(tokenCfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	manager, err := session.NewManagerFromConfig(cfg, codec, store, index,
//		session.WithVerifier(verifier),
//		session.WithLogger(log),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Sign a user in and hand out the pair:
//
//	sess, err := manager.SignIn(ctx, username, password)
//	if errors.Is(err, credentials.ErrBadCredentials) {
//		// wrong username or password
//	}
//	access := sess.Pair.Access().Encoded()
//	refresh := sess.Pair.Refresh().Encoded()
//
// Callers that already hold an authenticated principal skip the verifier:
//
//	sess, err := manager.Grant(ctx, userID, token.RoleUser)
//
// # Verification
//
// VerifyAccess and VerifyRefresh validate an encoded token end to end:
// signature, expiry, typing, index liveness, and the durable row.
//
//	sess, err := manager.VerifyAccess(ctx, encoded)
//	if err != nil {
//		// always session.ErrInvalidToken, whatever actually went wrong
//	}
//
// Every verification failure surfaces as ErrInvalidToken with the concrete
// cause joined in. A caller probing the API cannot tell a forged signature
// from an expired token from a revoked session; internal code can still
// errors.Is against the joined cause.
//
// # Refresh and Revocation
//
// Refresh exchanges a verified refresh token for a new pair:
//
//	sess, err := manager.VerifyRefresh(ctx, refreshToken)
//	if err != nil {
//		// ...
//	}
//	sess, err = manager.Refresh(ctx, sess)
//
// The durable update commits before the index is touched, so a crash
// mid-refresh leaves the old pair usable until its TTL instead of locking
// the user out. Revoke deletes the durable row and the index entries:
//
//	err := manager.Revoke(ctx, sess)
//	err = manager.RevokeAllForUser(ctx, userID)
//
// # Background Sweeping
//
// Revoked and expired sessions leave rows behind; the Sweeper removes
// sessions whose refresh token expired:
//
//	sweeper, err := session.NewSweeperFromConfig(cfg, store,
//		session.WithSweeperLogger(log),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(sweeper.Run(ctx))
//
// # Configuration
//
// Config loads from the environment via core/config:
//
//	SESSION_STORE_TIMEOUT  per-call durable store deadline (default 5s)
//	SESSION_INDEX_TIMEOUT  per-call index deadline (default 2s)
//	SESSION_PURGE_INTERVAL sweeper interval (default 15m)
//
// # Error Handling
//
// Operations wrap failures with errors.Join so both the operation sentinel
// and the cause match:
//
//   - ErrInvalidToken: any verification failure (cause joined in)
//   - ErrGrantFailed / ErrRefreshFailed / ErrRevokeFailed: lifecycle failures
//   - ErrNotFound: absent session or index entry
//   - ErrStoreFailed / ErrIndexFailed: wrapped backend failures
//
// # Thread Safety
//
// The manager holds no mutable state; all methods are safe for concurrent
// use. Concurrent refreshes of one session serialize on the durable row
// and the last writer wins, which can briefly leave two valid pairs in
// circulation. That window is bounded by the index TTL.
package session
