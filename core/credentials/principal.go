package credentials

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/core/token"
)

// Principal is the authenticated identity a verifier returns. It is the
// only shape the session core depends on.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     token.Role
}

// IsZero reports whether the principal carries no identity.
func (p Principal) IsZero() bool {
	return p.UserID == uuid.Nil
}
