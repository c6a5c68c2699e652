package token

import (
	"fmt"
	"maps"
	"math"
	"strings"
)

// Names of the custom claims this package reads and writes.
const (
	ClaimTokenUse = "token_use"
	ClaimRole     = "role"
)

// Claims maps claim names to scalar values. Only string, int64, and bool
// values are representable; NewClaims normalises other integer widths and
// integral floats (the shape JSON decoding produces) to int64. Treat a
// Claims value as immutable once constructed.
type Claims map[string]any

// NewClaims validates values and copies them into a fresh Claims map, so
// later mutation of the input cannot reach the token.
func NewClaims(values map[string]any) (Claims, error) {
	if len(values) == 0 {
		return nil, ErrEmptyClaims
	}

	claims := make(Claims, len(values))
	for name, value := range values {
		if strings.TrimSpace(name) == "" {
			return nil, ErrEmptyClaimName
		}
		normalized, ok := normalizeClaimValue(value)
		if !ok {
			return nil, fmt.Errorf("%w: claim %q", ErrInvalidClaimValue, name)
		}
		claims[name] = normalized
	}
	return claims, nil
}

// normalizeClaimValue coerces every accepted numeric representation to
// int64 so that claims survive a JSON round trip unchanged.
func normalizeClaimValue(value any) (any, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return v, true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, false
		}
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return nil, false
		}
		return int64(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return nil, false
		}
		return int64(v), true
	default:
		return nil, false
	}
}

// Has reports whether a claim with the given name is present.
func (c Claims) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Clone returns an independent copy of the claims map.
func (c Claims) Clone() Claims {
	if c == nil {
		return nil
	}
	return maps.Clone(c)
}

// Claim returns the value of the named claim as T. The second return is
// false when the claim is absent or holds a different type.
func Claim[T string | int64 | bool](c Claims, name string) (T, bool) {
	var zero T
	value, ok := c[name]
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
