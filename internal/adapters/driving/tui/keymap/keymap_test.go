package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
	assert.Contains(t, keys, "esc")
	assert.Equal(t, "cancel sync", km.Quit.Help().Desc)
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()
	assert.Len(t, km.ShortHelp(), 1)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key  string
		want bool
	}{
		{"q", true},
		{"ctrl+c", true},
		{"esc", true},
		{"enter", false},
		{"Q", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.key, km.Quit))
		})
	}
}
