package auth

import (
	"context"
	"os"
	"strings"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
)

// TokenEnvVar is the environment variable holding the access token.
const TokenEnvVar = "ACCESS_TOKEN_7SHIFTS"

// Ensure EnvTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*EnvTokenProvider)(nil)

// EnvTokenProvider reads the token from an environment variable on every
// call, so a changed variable is picked up without restarting.
type EnvTokenProvider struct {
	name   string
	lookup func(string) (string, bool)
}

// NewEnvTokenProvider creates a provider for the named variable. An empty
// name uses TokenEnvVar.
func NewEnvTokenProvider(name string) *EnvTokenProvider {
	if name == "" {
		name = TokenEnvVar
	}
	return &EnvTokenProvider{name: name, lookup: os.LookupEnv}
}

// GetToken returns the variable's value or domain.ErrNoToken.
func (p *EnvTokenProvider) GetToken(_ context.Context) (string, error) {
	value, ok := p.lookup(p.name)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", domain.ErrNoToken
	}
	return value, nil
}

// Source names the environment variable.
func (p *EnvTokenProvider) Source() string {
	return "environment variable " + p.name
}

// IsAuthenticated returns true if the variable is set and non-empty.
func (p *EnvTokenProvider) IsAuthenticated() bool {
	_, err := p.GetToken(context.Background())
	return err == nil
}
