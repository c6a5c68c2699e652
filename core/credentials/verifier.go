package credentials

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authkit/core/token"
)

// Verifier validates a username and password and returns the authenticated
// principal. Implementations report ErrBadCredentials for any mismatch.
type Verifier interface {
	Verify(ctx context.Context, username, password string) (Principal, error)
}

// DirectoryUser is a user record as the directory stores it. PasswordHash
// is a bcrypt hash produced by HashPassword.
type DirectoryUser struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         token.Role
}

// UserDirectory looks up user records by username. Implementations return
// ErrUserNotFound when no record matches; lookups are case-insensitive.
type UserDirectory interface {
	FindByUsername(ctx context.Context, username string) (DirectoryUser, error)
}

// DirectoryVerifier verifies credentials against a user directory using
// bcrypt password hashes.
type DirectoryVerifier struct {
	directory UserDirectory
}

// NewDirectoryVerifier wires a verifier over the given directory.
func NewDirectoryVerifier(directory UserDirectory) (*DirectoryVerifier, error) {
	if directory == nil {
		return nil, ErrMissingDirectory
	}
	return &DirectoryVerifier{directory: directory}, nil
}

// Verify checks the password against the stored hash. Unknown users and
// wrong passwords both come back as ErrBadCredentials; directory outages
// pass through so callers can tell an auth failure from an infra one.
func (v *DirectoryVerifier) Verify(ctx context.Context, username, password string) (Principal, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Principal{}, ErrBadCredentials
	}

	user, err := v.directory.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Principal{}, ErrBadCredentials
		}
		return Principal{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Principal{}, ErrBadCredentials
	}

	return Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
