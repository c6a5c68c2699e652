package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/core/session"
	"github.com/dmitrymomot/authkit/core/token"
	sessionredis "github.com/dmitrymomot/authkit/integration/session/redis"
)

func newTestIndex(t *testing.T) (*sessionredis.Index, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	index, err := sessionredis.New(client)
	require.NoError(t, err)
	return index, mr
}

func testPair(t *testing.T, subject string, issued, expires time.Time) token.Pair {
	t.Helper()

	mint := func(typ token.Type, encoded string) token.Token {
		claims, err := token.NewClaims(map[string]any{token.ClaimTokenUse: typ.String()})
		require.NoError(t, err)
		tok, err := token.New(encoded, typ, subject, claims, issued, expires)
		require.NoError(t, err)
		return tok
	}

	pair, err := token.NewPair(
		mint(token.TypeAccess, "access-"+subject),
		mint(token.TypeRefresh, "refresh-"+subject),
	)
	require.NoError(t, err)
	return pair
}

func TestNew_NilClient(t *testing.T) {
	t.Parallel()

	index, err := sessionredis.New(nil)
	require.ErrorIs(t, err, sessionredis.ErrNilClient)
	assert.Nil(t, index)
}

func TestIndex_SaveAndExists(t *testing.T) {
	t.Parallel()

	index, _ := newTestIndex(t)
	ctx := context.Background()
	pair := testPair(t, "u1", time.Now().Add(-time.Minute), time.Now().Add(time.Hour))

	require.NoError(t, index.Save(ctx, pair))

	live, err := index.AccessExists(ctx, pair.Access().Encoded())
	require.NoError(t, err)
	assert.True(t, live)

	live, err = index.RefreshExists(ctx, pair.Refresh().Encoded())
	require.NoError(t, err)
	assert.True(t, live)
}

func TestIndex_UnknownTokenIsMiss(t *testing.T) {
	t.Parallel()

	index, _ := newTestIndex(t)
	ctx := context.Background()

	live, err := index.AccessExists(ctx, "never-indexed")
	require.NoError(t, err)
	assert.False(t, live)

	live, err = index.RefreshExists(ctx, "never-indexed")
	require.NoError(t, err)
	assert.False(t, live)
}

func TestIndex_Delete(t *testing.T) {
	t.Parallel()

	index, _ := newTestIndex(t)
	ctx := context.Background()
	pair := testPair(t, "u2", time.Now().Add(-time.Minute), time.Now().Add(time.Hour))

	require.NoError(t, index.Save(ctx, pair))
	require.NoError(t, index.Delete(ctx, pair))

	live, err := index.AccessExists(ctx, pair.Access().Encoded())
	require.NoError(t, err)
	assert.False(t, live)

	live, err = index.RefreshExists(ctx, pair.Refresh().Encoded())
	require.NoError(t, err)
	assert.False(t, live)

	// Deleting an already absent pair is a no-op.
	require.NoError(t, index.Delete(ctx, pair))
}

func TestIndex_EntriesExpireWithTokens(t *testing.T) {
	t.Parallel()

	index, mr := newTestIndex(t)
	ctx := context.Background()
	pair := testPair(t, "u3", time.Now().Add(-time.Minute), time.Now().Add(time.Hour))

	require.NoError(t, index.Save(ctx, pair))

	mr.FastForward(2 * time.Hour)

	live, err := index.AccessExists(ctx, pair.Access().Encoded())
	require.NoError(t, err)
	assert.False(t, live)

	live, err = index.RefreshExists(ctx, pair.Refresh().Encoded())
	require.NoError(t, err)
	assert.False(t, live)
}

func TestIndex_NearExpiredPairGetsFloorTTL(t *testing.T) {
	t.Parallel()

	index, mr := newTestIndex(t)
	ctx := context.Background()

	// Both tokens expired an hour ago; the one second floor still lets the
	// pair round-trip through the index.
	pair := testPair(t, "u4", time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))

	require.NoError(t, index.Save(ctx, pair))

	live, err := index.AccessExists(ctx, pair.Access().Encoded())
	require.NoError(t, err)
	assert.True(t, live)

	mr.FastForward(2 * time.Second)

	live, err = index.AccessExists(ctx, pair.Access().Encoded())
	require.NoError(t, err)
	assert.False(t, live)
}

func TestIndex_ServerOutage(t *testing.T) {
	t.Parallel()

	index, mr := newTestIndex(t)
	ctx := context.Background()
	pair := testPair(t, "u5", time.Now().Add(-time.Minute), time.Now().Add(time.Hour))

	mr.Close()

	assert.ErrorIs(t, index.Save(ctx, pair), session.ErrIndexFailed)
	assert.ErrorIs(t, index.Delete(ctx, pair), session.ErrIndexFailed)

	_, err := index.AccessExists(ctx, pair.Access().Encoded())
	assert.ErrorIs(t, err, session.ErrIndexFailed)
}
