package token

// Pair bundles the access and refresh tokens minted together for one
// session. Each component is independently valid; no cross-token invariant
// is enforced beyond the typing of the two slots.
type Pair struct {
	access  Token
	refresh Token
}

// NewPair validates that each component carries its expected type.
func NewPair(access, refresh Token) (Pair, error) {
	if !access.IsAccess() {
		return Pair{}, ErrNotAccessToken
	}
	if !refresh.IsRefresh() {
		return Pair{}, ErrNotRefreshToken
	}
	return Pair{access: access, refresh: refresh}, nil
}

// Access returns the access token of the pair.
func (p Pair) Access() Token { return p.access }

// Refresh returns the refresh token of the pair.
func (p Pair) Refresh() Token { return p.refresh }

// IsZero reports whether the pair is the zero value.
func (p Pair) IsZero() bool { return p.access.IsZero() && p.refresh.IsZero() }
