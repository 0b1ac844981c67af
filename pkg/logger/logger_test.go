package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("development debug", func(t *testing.T) {
		log, err := New("development", "debug")
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zap.DebugLevel))
	})

	t.Run("production defaults to info", func(t *testing.T) {
		log, err := New("production", "")
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zap.DebugLevel))
		assert.True(t, log.Core().Enabled(zap.InfoLevel))
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		log, err := New("development", "loud")
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zap.DebugLevel))
	})
}
