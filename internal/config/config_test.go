package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("PORT", "9876")
	t.Setenv("DATABASE_USER", "seatguess")
	t.Setenv("DATABASE_PASSWORD", "seatguess")
	t.Setenv("DATABASE_HOST", "localhost")
	t.Setenv("DATABASE_PORT", "5432")
	t.Setenv("DATABASE_NAME", "seatguess")
	t.Setenv("DATABASE_SSL_MODE", "disable")
	t.Setenv("ENV", "DEV")
	t.Setenv("SESSION_KEY", base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef")))
	t.Setenv("SITE_HOST", "localhost:9876")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "http://", cfg.URLProtocol)
	assert.Equal(t, 0, cfg.GuessMin)
	assert.Equal(t, 500, cfg.GuessMax)
	assert.Equal(t, 3*time.Second, cfg.VerifyThrottle)
	assert.Equal(t, time.Minute, cfg.LeaderboardCacheTTL)
	assert.Equal(t, []byte("0123456789abcdef0123456789abcdef"), cfg.SessionKey)
	assert.Equal(t, 18, cfg.EventStartsAt.Hour())
	assert.Equal(t, "Asia/Bangkok", cfg.EventStartsAt.Location().String())
	assert.True(t, cfg.EventEndsAt.After(cfg.EventStartsAt))
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "prod")
	t.Setenv("GUESS_MAX", "250")
	t.Setenv("VERIFY_THROTTLE", "10s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://", cfg.URLProtocol)
	assert.Equal(t, 250, cfg.GuessMax)
	assert.Equal(t, 10*time.Second, cfg.VerifyThrottle)
}

func TestLoadConfig_Errors(t *testing.T) {
	testCases := []struct {
		key, value, msg string
	}{
		{"PORT", "", "PORT cannot be empty"},
		{"SESSION_KEY", "%%%", "unable to decode session key to bytes"},
		{"GUESS_MAX", "many", "could not convert GUESS_MAX to int"},
		{"GUESS_MIN", "600", "invalid guess range [600, 500]"},
		{"GUESS_MAX", "16777216", "GUESS_MAX cannot exceed 16777215"},
		{"VERIFY_THROTTLE", "soon", "could not parse VERIFY_THROTTLE as duration"},
		{"EVENT_STARTS_AT", "tomorrow", "could not parse EVENT_STARTS_AT"},
	}
	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.key, tc.value)
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoadConfig_GuessMaxAtCodeWidth(t *testing.T) {
	setRequired(t)
	t.Setenv("GUESS_MAX", "16777215")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 16777215, cfg.GuessMax)
}
