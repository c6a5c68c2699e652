package session

import "time"

// Config carries manager and sweeper settings loaded from the environment.
type Config struct {
	// StoreTimeout bounds each durable store call. Zero disables the bound.
	StoreTimeout time.Duration `env:"SESSION_STORE_TIMEOUT" envDefault:"5s"`
	// IndexTimeout bounds each fast-index call. Zero disables the bound.
	IndexTimeout time.Duration `env:"SESSION_INDEX_TIMEOUT" envDefault:"2s"`
	// PurgeInterval is how often the sweeper deletes expired sessions.
	PurgeInterval time.Duration `env:"SESSION_PURGE_INTERVAL" envDefault:"15m"`
}
