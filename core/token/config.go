package token

import "time"

// Config carries codec settings loaded from the environment.
type Config struct {
	SigningKey string        `env:"JWT_SIGNING_KEY,required"`
	Algorithm  string        `env:"JWT_ALGORITHM" envDefault:"HS256"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"720h"`

	// ClockSkew is tolerated on exp and nbf validation during decode.
	ClockSkew time.Duration `env:"JWT_CLOCK_SKEW" envDefault:"30s"`
}
