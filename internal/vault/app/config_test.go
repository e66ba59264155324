package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestLoadConfigDefaults verifies an empty environment yields development
// defaults.
func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("VAULT_CONFIG_FILE", "")
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("VAULT_SECURE_COOKIES", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "vault", cfg.Issuer)
	require.Equal(t, "vault.db", cfg.DatabaseFile)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Minute, cfg.ChallengeTTL)
	require.False(t, cfg.SecureCookies, "dev serves cookies over plain http")
	require.Empty(t, cfg.AllowedOrigins)
}

// TestLoadConfigEnv verifies environment variables override defaults.
func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("VAULT_CONFIG_FILE", "")
	t.Setenv("VAULT_ISSUER", "acme-vault")
	t.Setenv("VAULT_DATABASE_FILE", "/data/vault.db")
	t.Setenv("VAULT_REDIS_URL", "redis://cache:6379/0")
	t.Setenv("VAULT_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("HOUSEKEEPING_INTERVAL", "30")
	t.Setenv("VAULT_CAPTURE_TIMEOUT", "2s")
	t.Setenv("VAULT_SECURE_COOKIES", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "acme-vault", cfg.Issuer)
	require.Equal(t, "/data/vault.db", cfg.DatabaseFile)
	require.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 30*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, 2*time.Second, cfg.CaptureTimeout)
	require.True(t, cfg.SecureCookies)
}

// TestLoadConfigFile verifies the YAML file is applied beneath the
// environment.
func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
issuer: file-vault
database_file: /srv/vault.db
allowed_origins:
  - https://vault.example.com
port: 7070
challenge_ttl: 2m
`), 0o600))

	t.Setenv("VAULT_CONFIG_FILE", path)
	t.Setenv("VAULT_ISSUER", "")
	t.Setenv("VAULT_DATABASE_FILE", "")
	t.Setenv("VAULT_ALLOWED_ORIGINS", "")
	t.Setenv("VAULT_CHALLENGE_TTL", "")
	t.Setenv("PORT", "7171")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "file-vault", cfg.Issuer)
	require.Equal(t, "/srv/vault.db", cfg.DatabaseFile)
	require.Equal(t, []string{"https://vault.example.com"}, cfg.AllowedOrigins)
	require.Equal(t, 2*time.Minute, cfg.ChallengeTTL)
	require.Equal(t, 7171, cfg.Port, "environment wins over the file")
}

// TestLoadConfigErrors verifies broken input is reported.
func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T)
	}{
		{
			name: "missing file",
			setup: func(t *testing.T) {
				t.Setenv("VAULT_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
			},
		},
		{
			name: "malformed file",
			setup: func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "bad.yaml")
				require.NoError(t, os.WriteFile(path, []byte("port: [nope"), 0o600))
				t.Setenv("VAULT_CONFIG_FILE", path)
			},
		},
		{
			name: "port out of range",
			setup: func(t *testing.T) {
				t.Setenv("VAULT_CONFIG_FILE", "")
				t.Setenv("PORT", "70000")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			_, err := LoadConfig()
			require.Error(t, err)
			t.Logf("rejected: %v", err)
		})
	}
}

// TestGetEnvHelpers verifies unparsable values fall back to the default.
func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	t.Setenv("TEST_BOOL", "maybe")
	t.Setenv("TEST_DURATION", "soon")

	require.Equal(t, 3, getEnvIntOrDefault("TEST_INT", 3))
	require.True(t, getEnvBoolOrDefault("TEST_BOOL", true))
	require.Equal(t, time.Second, getEnvDurationOrDefault("TEST_DURATION", time.Second))
	require.Equal(t, "x", getEnvOrDefault("TEST_UNSET_VALUE", "x"))
}
