package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/core/token"
)

func mustClaims(t *testing.T, values map[string]any) token.Claims {
	t.Helper()
	claims, err := token.NewClaims(values)
	require.NoError(t, err)
	return claims
}

func newToken(t *testing.T, typ token.Type) token.Token {
	t.Helper()
	now := time.Now()
	claims := mustClaims(t, map[string]any{token.ClaimTokenUse: typ.String()})
	tok, err := token.New("header.payload.signature", typ, "user-123", claims, now, now.Add(time.Hour))
	require.NoError(t, err)
	return tok
}

func TestNew(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("builds a valid access token", func(t *testing.T) {
		t.Parallel()

		claims := mustClaims(t, map[string]any{
			token.ClaimTokenUse: "access",
			token.ClaimRole:     "admin",
		})
		tok, err := token.New("aaa.bbb.ccc", token.TypeAccess, "user-123", claims, now, now.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, "aaa.bbb.ccc", tok.Encoded())
		assert.Equal(t, "aaa.bbb.ccc", tok.String())
		assert.Equal(t, token.TypeAccess, tok.Type())
		assert.Equal(t, "user-123", tok.Subject())
		assert.True(t, tok.IsAccess())
		assert.False(t, tok.IsRefresh())
		assert.False(t, tok.IsZero())
		assert.False(t, tok.IsExpired())
		assert.True(t, now.Equal(tok.IssuedAt()))
		assert.True(t, now.Add(time.Hour).Equal(tok.ExpiresAt()))
	})

	t.Run("rejects invalid construction", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			name      string
			encoded   string
			typ       token.Type
			subject   string
			claims    map[string]any
			issuedAt  time.Time
			expiresAt time.Time
			wantErr   error
		}{
			{
				name:      "blank encoded form",
				encoded:   "   ",
				typ:       token.TypeAccess,
				subject:   "user-123",
				claims:    map[string]any{token.ClaimTokenUse: "access"},
				issuedAt:  now,
				expiresAt: now.Add(time.Hour),
				wantErr:   token.ErrEmptyEncodedToken,
			},
			{
				name:      "unknown token type",
				encoded:   "aaa.bbb.ccc",
				typ:       token.Type("session"),
				subject:   "user-123",
				claims:    map[string]any{token.ClaimTokenUse: "access"},
				issuedAt:  now,
				expiresAt: now.Add(time.Hour),
				wantErr:   token.ErrUnknownTokenType,
			},
			{
				name:      "blank subject",
				encoded:   "aaa.bbb.ccc",
				typ:       token.TypeAccess,
				subject:   "  ",
				claims:    map[string]any{token.ClaimTokenUse: "access"},
				issuedAt:  now,
				expiresAt: now.Add(time.Hour),
				wantErr:   token.ErrEmptySubject,
			},
			{
				name:      "nil claims",
				encoded:   "aaa.bbb.ccc",
				typ:       token.TypeAccess,
				subject:   "user-123",
				claims:    nil,
				issuedAt:  now,
				expiresAt: now.Add(time.Hour),
				wantErr:   token.ErrEmptyClaims,
			},
			{
				name:      "missing token_use claim",
				encoded:   "aaa.bbb.ccc",
				typ:       token.TypeAccess,
				subject:   "user-123",
				claims:    map[string]any{token.ClaimRole: "admin"},
				issuedAt:  now,
				expiresAt: now.Add(time.Hour),
				wantErr:   token.ErrMissingTokenUse,
			},
			{
				name:      "unknown token_use value",
				encoded:   "aaa.bbb.ccc",
				typ:       token.TypeAccess,
				subject:   "user-123",
				claims:    map[string]any{token.ClaimTokenUse: "session"},
				issuedAt:  now,
				expiresAt: now.Add(time.Hour),
				wantErr:   token.ErrUnknownTokenUse,
			},
			{
				name:      "token_use disagrees with type",
				encoded:   "aaa.bbb.ccc",
				typ:       token.TypeAccess,
				subject:   "user-123",
				claims:    map[string]any{token.ClaimTokenUse: "refresh"},
				issuedAt:  now,
				expiresAt: now.Add(time.Hour),
				wantErr:   token.ErrTokenUseMismatch,
			},
			{
				name:      "zero issued instant",
				encoded:   "aaa.bbb.ccc",
				typ:       token.TypeAccess,
				subject:   "user-123",
				claims:    map[string]any{token.ClaimTokenUse: "access"},
				issuedAt:  time.Time{},
				expiresAt: now.Add(time.Hour),
				wantErr:   token.ErrInvalidLifetime,
			},
			{
				name:      "zero expiry instant",
				encoded:   "aaa.bbb.ccc",
				typ:       token.TypeAccess,
				subject:   "user-123",
				claims:    map[string]any{token.ClaimTokenUse: "access"},
				issuedAt:  now,
				expiresAt: time.Time{},
				wantErr:   token.ErrInvalidLifetime,
			},
			{
				name:      "zero lifetime",
				encoded:   "aaa.bbb.ccc",
				typ:       token.TypeAccess,
				subject:   "user-123",
				claims:    map[string]any{token.ClaimTokenUse: "access"},
				issuedAt:  now,
				expiresAt: now,
				wantErr:   token.ErrInvalidLifetime,
			},
			{
				name:      "expiry before issue",
				encoded:   "aaa.bbb.ccc",
				typ:       token.TypeAccess,
				subject:   "user-123",
				claims:    map[string]any{token.ClaimTokenUse: "access"},
				issuedAt:  now,
				expiresAt: now.Add(-time.Hour),
				wantErr:   token.ErrInvalidLifetime,
			},
		}

		for _, tc := range testCases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				var claims token.Claims
				if tc.claims != nil {
					claims = mustClaims(t, tc.claims)
				}

				_, err := token.New(tc.encoded, tc.typ, tc.subject, claims, tc.issuedAt, tc.expiresAt)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})

	t.Run("copies claims on construction and access", func(t *testing.T) {
		t.Parallel()

		source := mustClaims(t, map[string]any{token.ClaimTokenUse: "access"})
		tok, err := token.New("aaa.bbb.ccc", token.TypeAccess, "user-123", source, now, now.Add(time.Hour))
		require.NoError(t, err)

		source[token.ClaimTokenUse] = "refresh"
		use, ok := token.Claim[string](tok.Claims(), token.ClaimTokenUse)
		require.True(t, ok)
		assert.Equal(t, "access", use)

		leaked := tok.Claims()
		leaked["injected"] = "value"
		assert.False(t, tok.Claims().Has("injected"))
	})
}

func TestToken_IsExpired(t *testing.T) {
	t.Parallel()

	claims := mustClaims(t, map[string]any{token.ClaimTokenUse: "access"})

	t.Run("reports a past expiry", func(t *testing.T) {
		t.Parallel()

		tok, err := token.New("aaa.bbb.ccc", token.TypeAccess, "user-123", claims,
			time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.True(t, tok.IsExpired())
	})

	t.Run("live token is not expired", func(t *testing.T) {
		t.Parallel()

		tok := newToken(t, token.TypeAccess)
		assert.False(t, tok.IsExpired())
	})
}

func TestToken_Role(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("returns a known role", func(t *testing.T) {
		t.Parallel()

		claims := mustClaims(t, map[string]any{
			token.ClaimTokenUse: "access",
			token.ClaimRole:     "admin",
		})
		tok, err := token.New("aaa.bbb.ccc", token.TypeAccess, "user-123", claims, now, now.Add(time.Hour))
		require.NoError(t, err)

		role, ok := tok.Role()
		require.True(t, ok)
		assert.Equal(t, token.RoleAdmin, role)
	})

	t.Run("absent claim yields no role", func(t *testing.T) {
		t.Parallel()

		tok := newToken(t, token.TypeAccess)
		_, ok := tok.Role()
		assert.False(t, ok)
	})

	t.Run("unknown claim value yields no role", func(t *testing.T) {
		t.Parallel()

		claims := mustClaims(t, map[string]any{
			token.ClaimTokenUse: "access",
			token.ClaimRole:     "superuser",
		})
		tok, err := token.New("aaa.bbb.ccc", token.TypeAccess, "user-123", claims, now, now.Add(time.Hour))
		require.NoError(t, err)

		_, ok := tok.Role()
		assert.False(t, ok)
	})
}

func TestToken_IsZero(t *testing.T) {
	t.Parallel()

	var zero token.Token
	assert.True(t, zero.IsZero())
	assert.False(t, newToken(t, token.TypeRefresh).IsZero())
}

func TestNewPair(t *testing.T) {
	t.Parallel()

	t.Run("pairs typed tokens", func(t *testing.T) {
		t.Parallel()

		access := newToken(t, token.TypeAccess)
		refresh := newToken(t, token.TypeRefresh)

		pair, err := token.NewPair(access, refresh)
		require.NoError(t, err)
		assert.Equal(t, access.Encoded(), pair.Access().Encoded())
		assert.Equal(t, refresh.Encoded(), pair.Refresh().Encoded())
		assert.False(t, pair.IsZero())
	})

	t.Run("rejects a refresh token in the access slot", func(t *testing.T) {
		t.Parallel()

		refresh := newToken(t, token.TypeRefresh)
		_, err := token.NewPair(refresh, refresh)
		assert.ErrorIs(t, err, token.ErrNotAccessToken)
	})

	t.Run("rejects an access token in the refresh slot", func(t *testing.T) {
		t.Parallel()

		access := newToken(t, token.TypeAccess)
		_, err := token.NewPair(access, access)
		assert.ErrorIs(t, err, token.ErrNotRefreshToken)
	})

	t.Run("rejects zero tokens", func(t *testing.T) {
		t.Parallel()

		_, err := token.NewPair(token.Token{}, newToken(t, token.TypeRefresh))
		assert.ErrorIs(t, err, token.ErrNotAccessToken)
	})

	t.Run("zero pair reports IsZero", func(t *testing.T) {
		t.Parallel()

		var pair token.Pair
		assert.True(t, pair.IsZero())
	})
}
