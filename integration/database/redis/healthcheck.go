package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

// Healthcheck returns a probe function suitable for readiness endpoints.
// The probe pings Redis on every call.
func Healthcheck(client *goredis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
