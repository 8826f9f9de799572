package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiedogbeer/go7shifts/internal/adapters/driven/storage/memory"
	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

func TestEnvTokenProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("reads variable", func(t *testing.T) {
		t.Setenv(TokenEnvVar, "  env-token \n")
		p := NewEnvTokenProvider("")

		token, err := p.GetToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "env-token", token)
		assert.True(t, p.IsAuthenticated())
		assert.Equal(t, "environment variable ACCESS_TOKEN_7SHIFTS", p.Source())
	})

	t.Run("missing variable", func(t *testing.T) {
		p := NewEnvTokenProvider("GO7SHIFTS_TEST_UNSET_TOKEN")

		_, err := p.GetToken(ctx)
		assert.ErrorIs(t, err, domain.ErrNoToken)
		assert.False(t, p.IsAuthenticated())
	})

	t.Run("empty variable", func(t *testing.T) {
		t.Setenv(TokenEnvVar, "")
		_, err := NewEnvTokenProvider(TokenEnvVar).GetToken(ctx)
		assert.ErrorIs(t, err, domain.ErrNoToken)
	})
}

func TestConfigTokenProvider(t *testing.T) {
	ctx := context.Background()
	store := memory.NewConfigStore()

	p := NewConfigTokenProvider(store)
	_, err := p.GetToken(ctx)
	assert.ErrorIs(t, err, domain.ErrNoToken)

	require.NoError(t, store.Set(TokenConfigKey, "cfg-token"))
	token, err := p.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cfg-token", token)
	assert.True(t, p.IsAuthenticated())

	_, err = NewConfigTokenProvider(nil).GetToken(ctx)
	assert.ErrorIs(t, err, domain.ErrNoToken)
}

func TestStaticTokenProvider(t *testing.T) {
	token, err := NewStaticTokenProvider("abc").GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = NewStaticTokenProvider("").GetToken(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoToken)
}

type failingProvider struct{ err error }

func (p failingProvider) GetToken(context.Context) (string, error) { return "", p.err }
func (p failingProvider) Source() string                            { return "failing" }
func (p failingProvider) IsAuthenticated() bool                     { return false }

func TestChainTokenProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("environment wins over config", func(t *testing.T) {
		t.Setenv(TokenEnvVar, "env-token")
		store := memory.NewConfigStore()
		require.NoError(t, store.Set(TokenConfigKey, "cfg-token"))

		p := NewDefaultTokenProvider(store)
		token, err := p.GetToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "env-token", token)
		assert.Contains(t, p.Source(), TokenEnvVar)
	})

	t.Run("falls back to config", func(t *testing.T) {
		t.Setenv(TokenEnvVar, "")
		store := memory.NewConfigStore()
		require.NoError(t, store.Set(TokenConfigKey, "cfg-token"))

		p := NewDefaultTokenProvider(store)
		token, err := p.GetToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "cfg-token", token)
		assert.True(t, p.IsAuthenticated())
	})

	t.Run("no token anywhere", func(t *testing.T) {
		t.Setenv(TokenEnvVar, "")
		p := NewDefaultTokenProvider(memory.NewConfigStore())

		_, err := p.GetToken(ctx)
		assert.ErrorIs(t, err, domain.ErrNoToken)
		assert.False(t, p.IsAuthenticated())
		assert.Equal(t, "none", p.Source())
	})

	t.Run("other errors stop the search", func(t *testing.T) {
		boom := errors.New("keychain locked")
		p := NewChainTokenProvider(failingProvider{err: boom}, NewStaticTokenProvider("x"))

		_, err := p.GetToken(ctx)
		assert.ErrorIs(t, err, boom)
	})
}
