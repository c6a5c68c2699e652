// Package redis provides the Redis-backed implementation of the
// session.TokenIndex interface.
//
// The index tracks which encoded tokens are currently live. Each token of
// a pair owns one key, namespaced by kind:
//
//	jwt:access:<encoded token>   -> "" (TTL = token expiry)
//	jwt:refresh:<encoded token>  -> "" (TTL = token expiry)
//
// Values are empty strings; the index is consulted only for key presence.
// Entry TTLs equal the remaining token lifetime clamped to a one second
// minimum, so the index forgets a token no later than the token itself
// expires, and revocation removes the keys early.
//
// Basic usage:
//
//	import (
//		"github.com/dmitrymomot/authkit/integration/database/redis"
//		sessionredis "github.com/dmitrymomot/authkit/integration/session/redis"
//	)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		// Handle connection error
//	}
//
//	index, err := sessionredis.New(client)
//	if err != nil {
//		// Handle configuration error
//	}
//
//	mgr, err := session.NewManager(codec, store, index)
//
// # Atomicity
//
// Save and Delete touch both keys of a pair inside a single MULTI/EXEC
// block, so a pair is indexed or dropped as a unit even when commands race
// with other clients.
//
// # Consistency Model
//
// The index is authoritative only in the negative: an absent key means the
// token is not live, while a present key still needs the durable store's
// confirmation. Because entries expire on their own, a crashed revocation
// leaves at most a token-lifetime window of stale presence, which the
// verify path closes by consulting the durable store. Failures are joined
// with session.ErrIndexFailed.
package redis
