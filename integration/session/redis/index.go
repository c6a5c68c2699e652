package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/authkit/core/session"
	"github.com/dmitrymomot/authkit/core/token"
)

// Compile-time check that Index implements session.TokenIndex.
var _ session.TokenIndex = (*Index)(nil)

// ErrNilClient is returned when the index is created without a client.
var ErrNilClient = errors.New("redis client is required")

// Key namespaces for the two token kinds. Values are empty strings; only
// key presence carries meaning.
const (
	accessKeyPrefix  = "jwt:access:"
	refreshKeyPrefix = "jwt:refresh:"
)

// minTTL is the floor for entry lifetimes. Redis rejects non-positive
// expirations, and a pair minted moments before its expiry must still
// round-trip through the index.
const minTTL = time.Second

// Index implements session.TokenIndex on Redis. Each live token owns one
// key that expires with the token, so the index answers liveness checks
// without consulting the durable store and forgets revoked entries at the
// latest when their TTL runs out.
type Index struct {
	client *goredis.Client
}

// New creates a token index backed by the given client.
func New(client *goredis.Client) (*Index, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	return &Index{client: client}, nil
}

// Save indexes both tokens of the pair in one MULTI/EXEC block, each entry
// expiring with its token.
func (i *Index) Save(ctx context.Context, pair token.Pair) error {
	pipe := i.client.TxPipeline()
	pipe.Set(ctx, accessKeyPrefix+pair.Access().Encoded(), "", entryTTL(pair.Access().ExpiresAt()))
	pipe.Set(ctx, refreshKeyPrefix+pair.Refresh().Encoded(), "", entryTTL(pair.Refresh().ExpiresAt()))
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(session.ErrIndexFailed, err)
	}
	return nil
}

// Delete drops both entries of the pair in one MULTI/EXEC block. Deleting
// absent keys is not an error.
func (i *Index) Delete(ctx context.Context, pair token.Pair) error {
	pipe := i.client.TxPipeline()
	pipe.Del(ctx, accessKeyPrefix+pair.Access().Encoded())
	pipe.Del(ctx, refreshKeyPrefix+pair.Refresh().Encoded())
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(session.ErrIndexFailed, err)
	}
	return nil
}

// AccessExists reports whether the encoded access token is live.
func (i *Index) AccessExists(ctx context.Context, encoded string) (bool, error) {
	return i.exists(ctx, accessKeyPrefix+encoded)
}

// RefreshExists reports whether the encoded refresh token is live.
func (i *Index) RefreshExists(ctx context.Context, encoded string) (bool, error) {
	return i.exists(ctx, refreshKeyPrefix+encoded)
}

func (i *Index) exists(ctx context.Context, key string) (bool, error) {
	n, err := i.client.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.Join(session.ErrIndexFailed, err)
	}
	return n > 0, nil
}

// entryTTL converts an absolute token expiry into the entry lifetime,
// clamped to the one second floor.
func entryTTL(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl < minTTL {
		return minTTL
	}
	return ttl
}
