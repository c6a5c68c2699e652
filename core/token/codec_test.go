package token_test

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/core/token"
	"github.com/dmitrymomot/authkit/pkg/jwt"
)

const codecTestKey = "codec-test-signing-key-0123456789"

func newTestCodec(t *testing.T, accessTTL, refreshTTL time.Duration) *token.Codec {
	t.Helper()
	svc, err := jwt.NewFromString(codecTestKey)
	require.NoError(t, err)
	codec, err := token.NewCodec(svc, accessTTL, refreshTTL)
	require.NoError(t, err)
	return codec
}

// forgedClaims mirrors the codec's wire shape so tests can sign payloads
// the codec should refuse.
type forgedClaims struct {
	jwtv5.RegisteredClaims
	TokenUse string `json:"token_use,omitempty"`
	Role     string `json:"role,omitempty"`
}

func forgeWire(use, role string) forgedClaims {
	now := time.Now()
	return forgedClaims{
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject:   "user-123",
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(time.Hour)),
		},
		TokenUse: use,
		Role:     role,
	}
}

func forgeToken(t *testing.T, headerType, use, role string) string {
	t.Helper()
	svc, err := jwt.NewFromString(codecTestKey)
	require.NoError(t, err)
	encoded, err := svc.GenerateWithType(headerType, forgeWire(use, role))
	require.NoError(t, err)
	return encoded
}

func TestNewCodec(t *testing.T) {
	t.Parallel()

	t.Run("requires a signing service", func(t *testing.T) {
		t.Parallel()

		_, err := token.NewCodec(nil, time.Minute, time.Hour)
		assert.ErrorIs(t, err, token.ErrMissingSigningService)
	})

	t.Run("requires positive lifetimes", func(t *testing.T) {
		t.Parallel()

		svc, err := jwt.NewFromString(codecTestKey)
		require.NoError(t, err)

		_, err = token.NewCodec(svc, 0, time.Hour)
		assert.ErrorIs(t, err, token.ErrInvalidTokenTTL)

		_, err = token.NewCodec(svc, time.Minute, -time.Hour)
		assert.ErrorIs(t, err, token.ErrInvalidTokenTTL)
	})

	t.Run("exposes the configured lifetimes", func(t *testing.T) {
		t.Parallel()

		codec := newTestCodec(t, 15*time.Minute, 720*time.Hour)
		assert.Equal(t, 15*time.Minute, codec.AccessTTL())
		assert.Equal(t, 720*time.Hour, codec.RefreshTTL())
	})
}

func TestNewCodecFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("builds a codec from full config", func(t *testing.T) {
		t.Parallel()

		codec, err := token.NewCodecFromConfig(token.Config{
			SigningKey: codecTestKey,
			Algorithm:  "HS512",
			AccessTTL:  time.Minute,
			RefreshTTL: time.Hour,
			ClockSkew:  30 * time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, time.Minute, codec.AccessTTL())
		assert.Equal(t, time.Hour, codec.RefreshTTL())
	})

	t.Run("rejects unsupported algorithms", func(t *testing.T) {
		t.Parallel()

		_, err := token.NewCodecFromConfig(token.Config{
			SigningKey: codecTestKey,
			Algorithm:  "RS256",
			AccessTTL:  time.Minute,
			RefreshTTL: time.Hour,
		})
		assert.ErrorIs(t, err, jwt.ErrInvalidSigningMethod)
	})

	t.Run("rejects a missing signing key", func(t *testing.T) {
		t.Parallel()

		_, err := token.NewCodecFromConfig(token.Config{
			AccessTTL:  time.Minute,
			RefreshTTL: time.Hour,
		})
		assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)
	})

	t.Run("rejects zero lifetimes", func(t *testing.T) {
		t.Parallel()

		_, err := token.NewCodecFromConfig(token.Config{SigningKey: codecTestKey})
		assert.ErrorIs(t, err, token.ErrInvalidTokenTTL)
	})
}

func TestCodec_Issue(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 720*time.Hour)

	t.Run("access token carries type, subject, and role", func(t *testing.T) {
		t.Parallel()

		tok, err := codec.IssueAccess("user-123", token.RoleAdmin)
		require.NoError(t, err)

		assert.True(t, tok.IsAccess())
		assert.Equal(t, "user-123", tok.Subject())
		assert.Equal(t, 15*time.Minute, tok.ExpiresAt().Sub(tok.IssuedAt()))

		role, ok := tok.Role()
		require.True(t, ok)
		assert.Equal(t, token.RoleAdmin, role)
	})

	t.Run("refresh token uses the refresh lifetime", func(t *testing.T) {
		t.Parallel()

		tok, err := codec.IssueRefresh("user-123", token.RoleUser)
		require.NoError(t, err)

		assert.True(t, tok.IsRefresh())
		assert.Equal(t, 720*time.Hour, tok.ExpiresAt().Sub(tok.IssuedAt()))
	})

	t.Run("empty role omits the claim", func(t *testing.T) {
		t.Parallel()

		tok, err := codec.IssueAccess("user-123", "")
		require.NoError(t, err)

		assert.False(t, tok.Claims().Has(token.ClaimRole))
		_, ok := tok.Role()
		assert.False(t, ok)
	})

	t.Run("rejects a blank subject", func(t *testing.T) {
		t.Parallel()

		_, err := codec.IssueAccess("  ", token.RoleUser)
		assert.ErrorIs(t, err, token.ErrIssueFailed)
		assert.ErrorIs(t, err, token.ErrEmptySubject)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		t.Parallel()

		_, err := codec.IssueRefresh("user-123", token.Role("root"))
		assert.ErrorIs(t, err, token.ErrIssueFailed)
		assert.ErrorIs(t, err, token.ErrUnknownRole)
	})
}

func TestCodec_IssuePair(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 720*time.Hour)

	pair, err := codec.IssuePair("user-123", token.RoleUser)
	require.NoError(t, err)

	assert.True(t, pair.Access().IsAccess())
	assert.True(t, pair.Refresh().IsRefresh())
	assert.Equal(t, "user-123", pair.Access().Subject())
	assert.Equal(t, "user-123", pair.Refresh().Subject())

	role, ok := pair.Refresh().Role()
	require.True(t, ok)
	assert.Equal(t, token.RoleUser, role)
	assert.NotEqual(t, pair.Access().Encoded(), pair.Refresh().Encoded())
}

func TestCodec_Decode(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 720*time.Hour)

	t.Run("round trips an issued access token", func(t *testing.T) {
		t.Parallel()

		issued, err := codec.IssueAccess("user-123", token.RoleAdmin)
		require.NoError(t, err)

		decoded, err := codec.Decode(issued.Encoded())
		require.NoError(t, err)

		assert.Equal(t, issued.Type(), decoded.Type())
		assert.Equal(t, issued.Subject(), decoded.Subject())
		assert.Equal(t, issued.Claims(), decoded.Claims())
		assert.True(t, issued.IssuedAt().Equal(decoded.IssuedAt()))
		assert.True(t, issued.ExpiresAt().Equal(decoded.ExpiresAt()))
	})

	t.Run("round trips an issued refresh token", func(t *testing.T) {
		t.Parallel()

		issued, err := codec.IssueRefresh("user-456", "")
		require.NoError(t, err)

		decoded, err := codec.Decode(issued.Encoded())
		require.NoError(t, err)

		assert.True(t, decoded.IsRefresh())
		assert.Equal(t, "user-456", decoded.Subject())
		assert.False(t, decoded.Claims().Has(token.ClaimRole))
	})

	t.Run("rejects a tampered token", func(t *testing.T) {
		t.Parallel()

		issued, err := codec.IssueAccess("user-123", token.RoleUser)
		require.NoError(t, err)

		encoded := issued.Encoded()
		last := encoded[len(encoded)-1]
		flipped := byte('A')
		if last == 'A' {
			flipped = 'B'
		}

		_, err = codec.Decode(encoded[:len(encoded)-1] + string(flipped))
		assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
	})

	t.Run("rejects a token signed with a different key", func(t *testing.T) {
		t.Parallel()

		other, err := jwt.NewFromString("another-key-entirely-0123456789ab")
		require.NoError(t, err)
		encoded, err := other.GenerateWithType("at+jwt", forgeWire("access", ""))
		require.NoError(t, err)

		_, err = codec.Decode(encoded)
		assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		t.Parallel()

		short := newTestCodec(t, time.Second, time.Hour)
		issued, err := short.IssueAccess("user-123", "")
		require.NoError(t, err)

		time.Sleep(1500 * time.Millisecond)

		_, err = short.Decode(issued.Encoded())
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()

		_, err := codec.Decode("definitely-not-a-jwt")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("rejects a plain JWT header", func(t *testing.T) {
		t.Parallel()

		encoded := forgeToken(t, "", "access", "")
		_, err := codec.Decode(encoded)
		assert.ErrorIs(t, err, token.ErrUnknownTokenType)
	})

	t.Run("rejects a missing token_use claim", func(t *testing.T) {
		t.Parallel()

		encoded := forgeToken(t, "at+jwt", "", "")
		_, err := codec.Decode(encoded)
		assert.ErrorIs(t, err, token.ErrMissingTokenUse)
	})

	t.Run("rejects an unknown token_use value", func(t *testing.T) {
		t.Parallel()

		encoded := forgeToken(t, "at+jwt", "session", "")
		_, err := codec.Decode(encoded)
		assert.ErrorIs(t, err, token.ErrUnknownTokenUse)
	})

	t.Run("rejects a header that disagrees with token_use", func(t *testing.T) {
		t.Parallel()

		encoded := forgeToken(t, "at+jwt", "refresh", "")
		_, err := codec.Decode(encoded)
		assert.ErrorIs(t, err, token.ErrTokenUseMismatch)
	})

	t.Run("tolerates unknown role values", func(t *testing.T) {
		t.Parallel()

		encoded := forgeToken(t, "at+jwt", "access", "superuser")
		decoded, err := codec.Decode(encoded)
		require.NoError(t, err)

		raw, ok := token.Claim[string](decoded.Claims(), token.ClaimRole)
		require.True(t, ok)
		assert.Equal(t, "superuser", raw)

		_, ok = decoded.Role()
		assert.False(t, ok)
	})
}
