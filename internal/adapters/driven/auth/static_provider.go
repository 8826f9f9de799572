package auth

import (
	"context"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
)

// Ensure StaticTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// StaticTokenProvider always returns the same token. Useful for library
// callers that manage the token themselves.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider for a fixed token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// GetToken returns the token, or domain.ErrNoToken when it is empty.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", domain.ErrNoToken
	}
	return p.token, nil
}

// Source returns "static".
func (p *StaticTokenProvider) Source() string {
	return "static"
}

// IsAuthenticated returns true if the token is non-empty.
func (p *StaticTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}
