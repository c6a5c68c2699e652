// Package jwt provides HMAC-signed JSON Web Token generation and parsing on
// top of github.com/golang-jwt/jwt/v5.
//
// The Service holds a single symmetric key and a fixed HMAC variant (HS256
// by default) and exposes Generate/Parse operations that work with any
// golang-jwt claims type. Parsing always verifies the signature, requires
// an exp claim, and applies the configured leeway to temporal validation.
//
// # Usage
//
// Basic setup and round trip:
//
//	service, err := jwt.NewFromString("your-256-bit-secret",
//		jwt.WithLeeway(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	type customClaims struct {
//		jwtv5.RegisteredClaims
//		Role string `json:"role,omitempty"`
//	}
//
//	encoded, err := service.Generate(customClaims{
//		RegisteredClaims: jwtv5.RegisteredClaims{
//			Subject:   "user-123",
//			IssuedAt:  jwtv5.NewNumericDate(time.Now()),
//			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
//		},
//		Role: "admin",
//	})
//
//	var claims customClaims
//	if _, err := service.Parse(encoded, &claims); err != nil {
//		switch {
//		case errors.Is(err, jwt.ErrExpiredToken):
//			// expired
//		case errors.Is(err, jwt.ErrInvalidSignature):
//			// tampered or foreign token
//		default:
//			// malformed or otherwise invalid
//		}
//	}
//
// GenerateWithType sets an explicit JOSE header typ, which lets callers
// mint RFC 9068 style typed tokens (at+jwt, rt+jwt); the parsed header is
// available on the returned token for callers that need to check it.
//
// # Error Handling
//
//   - ErrInvalidToken: malformed structure, missing exp, or nbf failure
//   - ErrExpiredToken: token past its expiration
//   - ErrInvalidSignature: signature verification failed
//   - ErrUnexpectedSigningMethod: algorithm outside the configured HMAC family
//   - ErrInvalidSigningMethod: unresolvable algorithm name
//   - ErrMissingSigningKey, ErrMissingClaims, ErrInvalidClaims: misuse guards
//
// All parse-time errors keep the underlying golang-jwt cause attached, so
// errors.Is works against both error sets.
//
// # Key Requirements
//
// Use at least 32 random bytes for HS256 and store the key outside the
// codebase. The key is process-wide, set once at startup, and never logged.
package jwt
