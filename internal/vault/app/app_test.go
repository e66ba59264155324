package app

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/vault/pkg/vaultsdk"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	cfg := defaultConfig()
	cfg.DatabaseFile = filepath.Join(dir, "vault.db")
	cfg.PepperFile = filepath.Join(dir, "pepper")
	cfg.LogLevel = "error"
	cfg.ShutdownGracePeriod = time.Second
	return cfg
}

// TestApplicationServes verifies a fully wired application answers health
// checks and the consent prompt.
func TestApplicationServes(t *testing.T) {
	application, err := New(testConfig(t))
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	client, err := vaultsdk.NewClient(srv.URL)
	require.NoError(t, err)

	ready, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, BuildVersion, ready.Version)

	view, err := client.AcceptConsent(t.Context(), vaultsdk.Permissions{Camera: true, Location: true, Storage: true}, 800)
	require.NoError(t, err)
	require.Equal(t, vaultsdk.ViewAuth, view)

	require.NoError(t, application.Shutdown())
}

// TestApplicationRejectsShortConsentSecret verifies a configured secret must
// be long enough to sign with.
func TestApplicationRejectsShortConsentSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.ConsentSecret = "short"

	_, err := New(cfg)
	require.Error(t, err)
}

// TestApplicationRedisUnavailable verifies startup fails when the configured
// redis cannot be reached.
func TestApplicationRedisUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.RedisURL = "redis://127.0.0.1:1/0"

	_, err := New(cfg)
	require.Error(t, err)
}

// TestApplicationWithRedis verifies challenges are kept in redis when one is
// configured.
func TestApplicationWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.RedisURL = "redis://" + mr.Addr() + "/0"

	application, err := New(cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, application.Shutdown()) }()

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	client, err := vaultsdk.NewClient(srv.URL)
	require.NoError(t, err)

	ch, err := client.GetChallenge(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, ch.Prompt)
	require.NotEmpty(t, mr.Keys(), "challenge answer should be stored in redis")
}
