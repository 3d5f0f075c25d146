package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/vagabond-api/internal/config"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Redis.URL)
	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.LogFormatText, cfg.LogFormat)
	assert.Equal(t, "director", cfg.UserID)
	assert.False(t, cfg.Director)
	assert.False(t, cfg.Discord.Enabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("VAGABOND_REDIS_URL", "redis://cache:6379/2")
	t.Setenv("VAGABOND_GRPC_PORT", "6000")
	t.Setenv("VAGABOND_DIRECTOR", "true")
	t.Setenv("VAGABOND_DISCORD_TOKEN", "secret")
	t.Setenv("VAGABOND_DISCORD_CHANNEL_ID", "123")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "redis://cache:6379/2", cfg.Redis.URL)
	assert.Equal(t, 6000, cfg.GRPCPort)
	assert.True(t, cfg.Director)
	assert.True(t, cfg.Discord.Enabled())
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("VAGABOND_LOCALE=fr-FR\nVAGABOND_USER_ID=user-7\n"), 0o600))
	t.Setenv("VAGABOND_USER_ID", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("VAGABOND_LOCALE") })

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fr-FR", cfg.Locale)
	assert.Equal(t, "from-env", cfg.UserID)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name string
		key  string
		val  string
	}{
		{name: "port out of range", key: "VAGABOND_GRPC_PORT", val: "70000"},
		{name: "unknown level", key: "VAGABOND_LOG_LEVEL", val: "loud"},
		{name: "unknown format", key: "VAGABOND_LOG_FORMAT", val: "xml"},
		{name: "discord half configured", key: "VAGABOND_DISCORD_TOKEN", val: "secret"},
		{name: "not a number", key: "VAGABOND_GRPC_PORT", val: "abc"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)

			_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := &config.Config{LogLevel: "warn", LogFormat: config.LogFormatJSON}

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"key":"value"`)
}
