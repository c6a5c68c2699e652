package jwt

import "errors"

var (
	// ErrInvalidToken is returned for malformed tokens and failed nbf/iat validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the exp claim is in the past.
	ErrExpiredToken = errors.New("token has expired")
	// ErrInvalidSignature is returned when signature verification fails.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrUnexpectedSigningMethod is returned when a token's algorithm is outside the configured HMAC family.
	ErrUnexpectedSigningMethod = errors.New("unexpected signing method")
	// ErrInvalidSigningMethod is returned when an algorithm name cannot be resolved.
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	// ErrMissingSigningKey is returned when a Service is created without a key.
	ErrMissingSigningKey = errors.New("missing signing key")
	// ErrInvalidClaims is returned when claims cannot be serialized for signing.
	ErrInvalidClaims = errors.New("invalid claims")
	// ErrMissingClaims is returned when Generate or Parse is called with nil claims.
	ErrMissingClaims = errors.New("missing claims")
)
