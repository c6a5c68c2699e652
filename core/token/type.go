package token

import "strings"

// Type discriminates access tokens from refresh tokens. The string value is
// the token_use marker carried in the payload.
type Type string

const (
	// TypeAccess identifies short-lived tokens presented on each request.
	TypeAccess Type = "access"
	// TypeRefresh identifies long-lived tokens exchanged for a new pair.
	TypeRefresh Type = "refresh"
)

// JOSE header typ tags, RFC 9068 style. The tag must agree with the
// payload's token_use claim.
const (
	accessHeaderType  = "at+jwt"
	refreshHeaderType = "rt+jwt"
)

// Valid reports whether t is one of the two known token types.
func (t Type) Valid() bool {
	return t == TypeAccess || t == TypeRefresh
}

// String returns the token_use marker for the type.
func (t Type) String() string { return string(t) }

// HeaderType returns the JOSE header typ tag for the type, or an empty
// string for an unknown type.
func (t Type) HeaderType() string {
	switch t {
	case TypeAccess:
		return accessHeaderType
	case TypeRefresh:
		return refreshHeaderType
	default:
		return ""
	}
}

// ParseHeaderType maps a JOSE header typ tag to a Type.
func ParseHeaderType(tag string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case accessHeaderType:
		return TypeAccess, nil
	case refreshHeaderType:
		return TypeRefresh, nil
	default:
		return "", ErrUnknownTokenType
	}
}

// ParseUse maps a token_use claim value to a Type. A blank value reports
// ErrMissingTokenUse so callers can distinguish an absent claim from an
// unrecognised one.
func ParseUse(use string) (Type, error) {
	switch use {
	case "":
		return "", ErrMissingTokenUse
	case string(TypeAccess):
		return TypeAccess, nil
	case string(TypeRefresh):
		return TypeRefresh, nil
	default:
		return "", ErrUnknownTokenUse
	}
}
