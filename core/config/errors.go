package config

import "errors"

var (
	// ErrNilConfig is returned when Load receives a nil pointer.
	ErrNilConfig = errors.New("config target is nil")

	// ErrParseFailed is returned when environment variables cannot be parsed
	// into the config struct; the cause is joined in.
	ErrParseFailed = errors.New("failed to parse config from environment")
)
