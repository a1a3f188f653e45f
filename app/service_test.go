package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fawsd/crewrotation/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Registry.BaseURL = "http://registry.invalid"
	cfg.Registry.CachePath = filepath.Join(dir, "cache.db")
	cfg.Lock.Path = filepath.Join(dir, "locks.db")
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestServiceHandlerRoutes(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	srv := httptest.NewServer(svc.Handler())
	defer srv.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Lock endpoints work without the registry.
	resp, err = client.Get(srv.URL + "/api/locks?rank=NAKHODA")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Plan requests fail upstream, not internally: the registry is
	// unreachable and the cache is cold.
	resp, err = client.Get(srv.URL + "/api/schedule?fleet=container&category=deck&group=D1&rank=NAKHODA")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
