package token

import (
	"errors"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dmitrymomot/authkit/pkg/jwt"
)

// wireClaims is the payload shape the codec signs and parses: the
// registered sub/iat/exp claims plus token_use and the optional role.
type wireClaims struct {
	jwtv5.RegisteredClaims
	TokenUse string `json:"token_use"`
	Role     string `json:"role,omitempty"`
}

// Codec mints and decodes typed tokens using an HMAC signing service.
// Decode re-establishes every Token invariant, so a Token returned from it
// is as trustworthy as one returned from the issue operations.
type Codec struct {
	svc        *jwt.Service
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec wires a signing service with per-type token lifetimes.
func NewCodec(svc *jwt.Service, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if svc == nil {
		return nil, ErrMissingSigningService
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, ErrInvalidTokenTTL
	}
	return &Codec{
		svc:        svc,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// NewCodecFromConfig builds the signing service and codec from Config.
func NewCodecFromConfig(cfg Config) (*Codec, error) {
	method, err := jwt.SigningMethodByName(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	svc, err := jwt.NewFromString(cfg.SigningKey,
		jwt.WithSigningMethod(method),
		jwt.WithLeeway(cfg.ClockSkew),
	)
	if err != nil {
		return nil, err
	}
	return NewCodec(svc, cfg.AccessTTL, cfg.RefreshTTL)
}

// AccessTTL returns the configured access token lifetime.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// IssueAccess mints an access token for the subject. Role is optional;
// pass an empty Role to omit the claim.
func (c *Codec) IssueAccess(subject string, role Role) (Token, error) {
	return c.issue(TypeAccess, subject, role, c.accessTTL)
}

// IssueRefresh mints a refresh token for the subject.
func (c *Codec) IssueRefresh(subject string, role Role) (Token, error) {
	return c.issue(TypeRefresh, subject, role, c.refreshTTL)
}

// IssuePair mints the access token first, then the refresh token.
func (c *Codec) IssuePair(subject string, role Role) (Pair, error) {
	access, err := c.IssueAccess(subject, role)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := c.IssueRefresh(subject, role)
	if err != nil {
		return Pair{}, err
	}
	return NewPair(access, refresh)
}

func (c *Codec) issue(typ Type, subject string, role Role, ttl time.Duration) (Token, error) {
	if strings.TrimSpace(subject) == "" {
		return Token{}, errors.Join(ErrIssueFailed, ErrEmptySubject)
	}
	if role != "" && !role.Valid() {
		return Token{}, errors.Join(ErrIssueFailed, ErrUnknownRole)
	}

	// NumericDate carries whole seconds on the wire; second precision here
	// keeps decoded instants identical to the issued ones.
	issuedAt := time.Now().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)

	wire := wireClaims{
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwtv5.NewNumericDate(issuedAt),
			ExpiresAt: jwtv5.NewNumericDate(expiresAt),
		},
		TokenUse: typ.String(),
		Role:     role.String(),
	}

	encoded, err := c.svc.GenerateWithType(typ.HeaderType(), wire)
	if err != nil {
		return Token{}, errors.Join(ErrIssueFailed, err)
	}

	claims := Claims{ClaimTokenUse: typ.String()}
	if role != "" {
		claims[ClaimRole] = role.String()
	}

	return New(encoded, typ, subject, claims, issuedAt, expiresAt)
}

// Decode parses and verifies an encoded token, returning a fully validated
// Token. Failures keep their distinct causes: malformed input, bad
// signatures, and expiry surface the pkg/jwt sentinels, while typing
// failures surface ErrUnknownTokenType, ErrMissingTokenUse,
// ErrUnknownTokenUse, or ErrTokenUseMismatch. Decode performs no I/O and
// never mutates state.
func (c *Codec) Decode(encoded string) (Token, error) {
	var wire wireClaims
	parsed, err := c.svc.Parse(encoded, &wire)
	if err != nil {
		return Token{}, err
	}

	tag, _ := parsed.Header["typ"].(string)
	typ, err := ParseHeaderType(tag)
	if err != nil {
		return Token{}, err
	}

	use, err := ParseUse(wire.TokenUse)
	if err != nil {
		return Token{}, err
	}
	if use != typ {
		return Token{}, ErrTokenUseMismatch
	}

	claims := Claims{ClaimTokenUse: use.String()}
	if wire.Role != "" {
		claims[ClaimRole] = wire.Role
	}

	var issuedAt, expiresAt time.Time
	if wire.IssuedAt != nil {
		issuedAt = wire.IssuedAt.Time
	}
	if wire.ExpiresAt != nil {
		expiresAt = wire.ExpiresAt.Time
	}

	return New(encoded, typ, wire.Subject, claims, issuedAt, expiresAt)
}
