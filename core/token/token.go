package token

import (
	"strings"
	"time"
)

// Token is a typed, validated JWT. Construction through New establishes
// every invariant, so holding a non-zero Token means the encoded form,
// typing, subject, claims, and lifetime have all been checked.
type Token struct {
	encoded   string
	typ       Type
	subject   string
	claims    Claims
	issuedAt  time.Time
	expiresAt time.Time
}

// New builds a Token after validating the cross-field invariants: encoded
// form, subject, and claims must be present, the token_use claim must be
// recognised and agree with typ, and issuedAt must precede expiresAt.
func New(encoded string, typ Type, subject string, claims Claims, issuedAt, expiresAt time.Time) (Token, error) {
	if strings.TrimSpace(encoded) == "" {
		return Token{}, ErrEmptyEncodedToken
	}
	if !typ.Valid() {
		return Token{}, ErrUnknownTokenType
	}
	if strings.TrimSpace(subject) == "" {
		return Token{}, ErrEmptySubject
	}
	if len(claims) == 0 {
		return Token{}, ErrEmptyClaims
	}

	use, ok := Claim[string](claims, ClaimTokenUse)
	if !ok {
		return Token{}, ErrMissingTokenUse
	}
	parsed, err := ParseUse(use)
	if err != nil {
		return Token{}, err
	}
	if parsed != typ {
		return Token{}, ErrTokenUseMismatch
	}

	if issuedAt.IsZero() || expiresAt.IsZero() || !issuedAt.Before(expiresAt) {
		return Token{}, ErrInvalidLifetime
	}

	return Token{
		encoded:   encoded,
		typ:       typ,
		subject:   subject,
		claims:    claims.Clone(),
		issuedAt:  issuedAt,
		expiresAt: expiresAt,
	}, nil
}

// Encoded returns the compact serialized form.
func (t Token) Encoded() string { return t.encoded }

// Type returns the token type.
func (t Token) Type() Type { return t.typ }

// Subject returns the principal identifier the token was issued for.
func (t Token) Subject() string { return t.subject }

// Claims returns a copy of the token's claims.
func (t Token) Claims() Claims { return t.claims.Clone() }

// IssuedAt returns the instant the token was minted.
func (t Token) IssuedAt() time.Time { return t.issuedAt }

// ExpiresAt returns the instant the token stops being valid.
func (t Token) ExpiresAt() time.Time { return t.expiresAt }

// IsAccess reports whether the token is an access token.
func (t Token) IsAccess() bool { return t.typ == TypeAccess }

// IsRefresh reports whether the token is a refresh token.
func (t Token) IsRefresh() bool { return t.typ == TypeRefresh }

// IsExpired reports whether the token's expiration has passed.
func (t Token) IsExpired() bool { return time.Now().After(t.expiresAt) }

// IsZero reports whether the token is the zero value.
func (t Token) IsZero() bool { return t.encoded == "" }

// Role returns the parsed role claim. The second return is false when the
// claim is absent or its value is not a known role.
func (t Token) Role() (Role, bool) {
	raw, ok := Claim[string](t.claims, ClaimRole)
	if !ok {
		return "", false
	}
	role, err := ParseRole(raw)
	if err != nil {
		return "", false
	}
	return role, true
}

// String returns the encoded form.
func (t Token) String() string { return t.encoded }
