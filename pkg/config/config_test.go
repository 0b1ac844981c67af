package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "MOCK_HOST", "MOCK_PORT", "MOCK_PERSIST_CHANGES", "MOCK_DATA_PATH", "POSTGRES_DSN", "ALLOWED_ORIGINS", "PRESIGN_TTL", "JWT_SECRET", "MOCK_ALLOW_CORS", "STORAGE_BASE_URL", "MAX_UPLOAD_BYTES", "LOG_LEVEL", "MOCK_RELOAD",
	} {
		unsetEnv(t, key)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0:8100", cfg.Addr())
	assert.True(t, cfg.AllowCORS)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.PersistChanges)
	assert.Equal(t, "mock_data/data.json", cfg.DataPath)
	assert.Equal(t, 15*time.Minute, cfg.PresignTTL)
	assert.Equal(t, "https://your-oss-domain.com", cfg.StorageBaseURL)
	assert.Equal(t, "disabled", cfg.PersistenceMode())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	unsetEnv(t, "ENVIRONMENT")
	t.Setenv("MOCK_PORT", "9000")
	t.Setenv("MOCK_PERSIST_CHANGES", "true")
	t.Setenv("POSTGRES_DSN", " postgres://u:p@localhost/db \n")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("PRESIGN_TTL", "1h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.PostgresDSN)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.PresignTTL)
	assert.Equal(t, "postgres", cfg.PersistenceMode())
}

func TestValidate(t *testing.T) {
	cfg := &Config{Environment: "production", Port: "8100", DataPath: "x.json", MaxUploadBytes: 1, JWTSecret: defaultJWTSecret}
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "real-secret"
	assert.NoError(t, cfg.Validate())

	cfg.DataPath = ""
	assert.Error(t, cfg.Validate())
}

// unsetEnv removes key for the duration of the test; t.Setenv restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
