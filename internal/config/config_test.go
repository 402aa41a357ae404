package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "GEMINI_REQUEST_TIMEOUT",
		"CURSOR_REQUEST_DELAY_MS", "CURSOR_OUTPUT_DIR", "CURSOR_MAX_THEME_LENGTH", "CURSOR_BLOCKED_WORDS",
		"HTTP_ADDR", "WORKER_CRON", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	t.Setenv("GEMINI_API_KEY", placeholderAPIKey)
	_, err = Load()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.GeminiModel)
	assert.Equal(t, time.Second, cfg.RequestDelay)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 100, cfg.MaxThemeLength)
	assert.Equal(t, defaultBlockedWords, cfg.BlockedWords)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Error(t, cfg.ValidateDB())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("CURSOR_REQUEST_DELAY_MS", "250")
	t.Setenv("CURSOR_BLOCKED_WORDS", " Foo, ,bar ")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_NAME", "cursors")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.RequestDelay)
	assert.Equal(t, []string{"foo", "bar"}, cfg.BlockedWords)
	require.NoError(t, cfg.ValidateDB())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=cursors sslmode=disable", cfg.GetDSN())
}
