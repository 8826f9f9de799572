package auth

import (
	"context"
	"strings"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
)

// TokenConfigKey is the configuration key holding a stored token.
const TokenConfigKey = "api.token"

// Ensure ConfigTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*ConfigTokenProvider)(nil)

// ConfigTokenProvider reads the token saved with `7shifts settings token`.
type ConfigTokenProvider struct {
	config driven.ConfigStore
}

// NewConfigTokenProvider creates a provider backed by the config store.
func NewConfigTokenProvider(config driven.ConfigStore) *ConfigTokenProvider {
	return &ConfigTokenProvider{config: config}
}

// GetToken returns the stored token or domain.ErrNoToken.
func (p *ConfigTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.config == nil {
		return "", domain.ErrNoToken
	}
	token := strings.TrimSpace(p.config.GetString(TokenConfigKey))
	if token == "" {
		return "", domain.ErrNoToken
	}
	return token, nil
}

// Source names the config file.
func (p *ConfigTokenProvider) Source() string {
	if p.config == nil {
		return "config"
	}
	return "config " + p.config.Path()
}

// IsAuthenticated returns true if a token is stored.
func (p *ConfigTokenProvider) IsAuthenticated() bool {
	_, err := p.GetToken(context.Background())
	return err == nil
}
