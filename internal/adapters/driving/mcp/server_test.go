package mcp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingWorkforceService)
	})

	t.Run("nil workforce service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingWorkforceService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Workforce: &mockWorkforceService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("workforce only is valid", func(t *testing.T) {
		ports := &Ports{Workforce: &mockWorkforceService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Workforce: &mockWorkforceService{},
			Sync:      &mockSyncOrchestrator{},
			Location:  time.UTC,
		}
		assert.NoError(t, ports.Validate())
	})

	t.Run("location defaults to local", func(t *testing.T) {
		ports := &Ports{Workforce: &mockWorkforceService{}}
		assert.Equal(t, time.Local, ports.location())
	})
}
