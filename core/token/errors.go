package token

import "errors"

var (
	// ErrEmptyEncodedToken is returned when a token is built from a blank encoded form.
	ErrEmptyEncodedToken = errors.New("encoded token is empty")
	// ErrUnknownTokenType is returned when a header type tag is neither at+jwt nor rt+jwt.
	ErrUnknownTokenType = errors.New("unknown token type")
	// ErrEmptySubject is returned when a token subject is blank.
	ErrEmptySubject = errors.New("token subject is empty")
	// ErrEmptyClaims is returned when a token carries no claims.
	ErrEmptyClaims = errors.New("token claims are empty")
	// ErrEmptyClaimName is returned when a claim name is blank.
	ErrEmptyClaimName = errors.New("claim name is empty")
	// ErrInvalidClaimValue is returned for claim values that are not a string, integer, or boolean.
	ErrInvalidClaimValue = errors.New("claim value must be a string, integer, or boolean")
	// ErrMissingTokenUse is returned when the token_use claim is absent.
	ErrMissingTokenUse = errors.New("token_use claim is missing")
	// ErrUnknownTokenUse is returned when the token_use claim value is neither access nor refresh.
	ErrUnknownTokenUse = errors.New("token_use claim value is unknown")
	// ErrTokenUseMismatch is returned when the token_use claim disagrees with the token type.
	ErrTokenUseMismatch = errors.New("token_use claim does not match token type")
	// ErrInvalidLifetime is returned when a token is not issued strictly before it expires.
	ErrInvalidLifetime = errors.New("token must be issued before it expires")
	// ErrUnknownRole is returned when a role value is outside the known set.
	ErrUnknownRole = errors.New("unknown role")
	// ErrNotAccessToken is returned when a pair is built with a non-access token in the access slot.
	ErrNotAccessToken = errors.New("token is not an access token")
	// ErrNotRefreshToken is returned when a pair is built with a non-refresh token in the refresh slot.
	ErrNotRefreshToken = errors.New("token is not a refresh token")
	// ErrIssueFailed is returned when minting a new token fails.
	ErrIssueFailed = errors.New("failed to issue token")
	// ErrMissingSigningService is returned when a codec is created without a signing service.
	ErrMissingSigningService = errors.New("signing service is required")
	// ErrInvalidTokenTTL is returned when a codec is configured with a non-positive lifetime.
	ErrInvalidTokenTTL = errors.New("token ttl must be positive")
)
