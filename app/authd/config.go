package authd

import (
	"github.com/dmitrymomot/authkit/core/session"
	"github.com/dmitrymomot/authkit/core/token"
	"github.com/dmitrymomot/authkit/integration/database/pg"
	"github.com/dmitrymomot/authkit/integration/database/redis"
)

type Config struct {
	DB      pg.Config
	Redis   redis.Config
	Token   token.Config
	Session session.Config

	AppName string `env:"APP_NAME" envDefault:"authd"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	// LogLevel overrides the environment profile's default level when set.
	LogLevel string `env:"LOG_LEVEL"`
}
