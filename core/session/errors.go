package session

import "errors"

var (
	// ErrInvalidToken is the single failure the verify operations report.
	// The concrete cause is joined in, but callers that only check this
	// sentinel cannot distinguish a forged token from a revoked one.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnexpectedTokenType is returned when a token decodes fine but is not the type the operation expects.
	ErrUnexpectedTokenType = errors.New("unexpected token type")
	// ErrNotFound is returned when a session or index entry is absent.
	ErrNotFound = errors.New("session not found")
	// ErrNotAuthenticated is returned when an operation needs a persisted session and was given one without an ID.
	ErrNotAuthenticated = errors.New("session is not authenticated")
	// ErrMissingUserID is returned when a session is created for the nil user ID.
	ErrMissingUserID = errors.New("user id is required")
	// ErrMissingTokenPair is returned when a session is created or rotated with a zero token pair.
	ErrMissingTokenPair = errors.New("token pair is required")
	// ErrStoreFailed wraps durable store failures other than absence.
	ErrStoreFailed = errors.New("session store failed")
	// ErrIndexFailed wraps token index failures.
	ErrIndexFailed = errors.New("token index failed")
	// ErrGrantFailed is returned when granting a session fails at any step.
	ErrGrantFailed = errors.New("failed to grant session")
	// ErrRefreshFailed is returned when rotating a session fails at any step.
	ErrRefreshFailed = errors.New("failed to refresh session")
	// ErrRevokeFailed is returned when revoking sessions fails.
	ErrRevokeFailed = errors.New("failed to revoke session")
	// ErrNoVerifier is returned by SignIn when no credentials verifier is configured.
	ErrNoVerifier = errors.New("credentials verifier is not configured")
	// ErrMissingCodec is returned when a manager is created without a token codec.
	ErrMissingCodec = errors.New("token codec is required")
	// ErrMissingStore is returned when a manager or sweeper is created without a store.
	ErrMissingStore = errors.New("session store is required")
	// ErrMissingIndex is returned when a manager is created without a token index.
	ErrMissingIndex = errors.New("token index is required")
	// ErrSweeperNotRunning indicates the sweeper has not been started or was stopped.
	ErrSweeperNotRunning = errors.New("session sweeper is not running")
	// ErrHealthcheckFailed indicates a health check did not pass.
	ErrHealthcheckFailed = errors.New("healthcheck failed")
)
