package driven

import "context"

// TokenProvider provides the bearer token for API calls.
type TokenProvider interface {
	// GetToken returns the access token.
	// Returns domain.ErrNoToken if none is available.
	GetToken(ctx context.Context) (string, error)

	// Source describes where the token came from, for display.
	Source() string

	// IsAuthenticated returns true if a token is available.
	IsAuthenticated() bool
}
