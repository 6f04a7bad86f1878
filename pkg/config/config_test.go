package config_test

import (
	"testing"
	"time"

	"github.com/dmitrymomot/authkit/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "_t", cfg.StorageKey)
	assert.Equal(t, "/sign-in", cfg.LoginPath)
	assert.Equal(t, "/dashboard", cfg.LandingPath)
	assert.Equal(t, "/unauthorized", cfg.UnauthorizedPath)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AUTH_API_BASE_URL", "https://api.example.com")
	t.Setenv("AUTH_REQUEST_TIMEOUT", "3s")
	t.Setenv("AUTH_STORAGE_KEY", "cred")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "cred", cfg.StorageKey)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty base url", func(c *config.Config) { c.APIBaseURL = "" }},
		{"non-http base url", func(c *config.Config) { c.APIBaseURL = "ftp://host" }},
		{"zero timeout", func(c *config.Config) { c.RequestTimeout = 0 }},
		{"negative timeout", func(c *config.Config) { c.RequestTimeout = -time.Second }},
		{"empty encryption key", func(c *config.Config) { c.EncryptionKey = "" }},
		{"empty storage key", func(c *config.Config) { c.StorageKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, config.Default().Validate())
	})
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	t.Setenv("AUTH_REQUEST_TIMEOUT", "-5s")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}
