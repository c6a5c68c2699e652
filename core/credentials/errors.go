package credentials

import "errors"

var (
	// ErrBadCredentials is returned when the username is unknown or the password does not match.
	// The two cases are deliberately indistinguishable to the caller.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrUserNotFound is returned by a UserDirectory when no user carries the username.
	ErrUserNotFound = errors.New("user not found")
	// ErrMissingDirectory is returned when a verifier is created without a user directory.
	ErrMissingDirectory = errors.New("user directory is required")
	// ErrEmptyPassword is returned when hashing an empty password.
	ErrEmptyPassword = errors.New("password is empty")
)
