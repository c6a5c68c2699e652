// Package token provides the typed JWT domain model for the session engine:
// validated access/refresh tokens, scalar claims, roles, and the codec that
// converts between domain tokens and their signed wire form.
//
// # Core Types
//
//   - Type: access vs refresh, with distinct JOSE header tags (at+jwt, rt+jwt)
//   - Claims: scalar-only map (string | int64 | bool) with a typed accessor
//   - Token: typed JWT whose invariants are established at construction
//   - Pair: the access+refresh bundle minted together for one session
//   - Codec: issue and decode operations backed by pkg/jwt HMAC signing
//
// # Construction Invariants
//
// New rejects blank encoded forms, unknown types, blank subjects, empty
// claims, a missing or unrecognised token_use claim, a token_use value that
// disagrees with the type, and lifetimes where issue does not strictly
// precede expiry. Because Decode funnels parsed wire data through New, a
// Token obtained from either path satisfies the same invariants.
//
// # Usage
//
// Mint and decode a pair:
//
//	codec, err := token.NewCodecFromConfig(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	pair, err := codec.IssuePair(userID.String(), token.RoleUser)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	decoded, err := codec.Decode(pair.Access().Encoded())
//	if err != nil {
//		// errors.Is against jwt.ErrExpiredToken, jwt.ErrInvalidSignature,
//		// token.ErrUnknownTokenType, token.ErrTokenUseMismatch, ...
//	}
//	_ = decoded.Subject()
//
// Read typed claims:
//
//	role, ok := decoded.Role()
//	use, ok := token.Claim[string](decoded.Claims(), token.ClaimTokenUse)
//
// # Wire Format
//
// Compact JWS with header {alg, typ} where typ distinguishes access from
// refresh tokens, and payload {sub, iat, exp, token_use, role?}. Timestamps
// are truncated to whole seconds at issue time so that decoded tokens carry
// exactly the instants that were signed.
//
// # Error Handling
//
// Decode keeps failure causes distinct (malformed, bad signature, expired,
// unknown type, claim mismatch); orchestration layers are expected to
// collapse them into a single opaque failure before exposing them to
// unauthenticated callers.
package token
