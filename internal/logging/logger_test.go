package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})
	assert.Error(t, err)
}

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	logger, err := New(Config{Level: "info", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Named("mount").With(zap.String("session", "abc")).Info("Ready")
	logger.Debug("hidden")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"Ready"`)
	assert.Contains(t, string(data), `"session":"abc"`)
	assert.Contains(t, string(data), `"logger":"mount"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, "info", DefaultConfig().Level)
	assert.False(t, DefaultConfig().Development)
	assert.Equal(t, "debug", DevelopmentConfig().Level)
	assert.True(t, DevelopmentConfig().Development)

	assert.NotNil(t, NewDefault())
	assert.NotNil(t, NewNop())
}

func TestEncodingFormat(t *testing.T) {
	assert.Equal(t, "console", encodingFormat(true))
	assert.Equal(t, "json", encodingFormat(false))
}
