package auth

import (
	"context"
	"errors"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
)

// Ensure ChainTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*ChainTokenProvider)(nil)

// ChainTokenProvider asks each provider in turn and uses the first token
// found.
type ChainTokenProvider struct {
	providers []driven.TokenProvider
}

// NewChainTokenProvider creates a provider trying providers in order.
func NewChainTokenProvider(providers ...driven.TokenProvider) *ChainTokenProvider {
	return &ChainTokenProvider{providers: providers}
}

// NewDefaultTokenProvider checks ACCESS_TOKEN_7SHIFTS, then api.token.
func NewDefaultTokenProvider(config driven.ConfigStore) *ChainTokenProvider {
	return NewChainTokenProvider(
		NewEnvTokenProvider(TokenEnvVar),
		NewConfigTokenProvider(config),
	)
}

// GetToken returns the first token available. Errors other than
// domain.ErrNoToken stop the search.
func (p *ChainTokenProvider) GetToken(ctx context.Context) (string, error) {
	for _, provider := range p.providers {
		token, err := provider.GetToken(ctx)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, domain.ErrNoToken) {
			return "", err
		}
	}
	return "", domain.ErrNoToken
}

// Source reports the first provider holding a token.
func (p *ChainTokenProvider) Source() string {
	for _, provider := range p.providers {
		if provider.IsAuthenticated() {
			return provider.Source()
		}
	}
	return "none"
}

// IsAuthenticated returns true if any provider has a token.
func (p *ChainTokenProvider) IsAuthenticated() bool {
	for _, provider := range p.providers {
		if provider.IsAuthenticated() {
			return true
		}
	}
	return false
}
