package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestParseJson_Overlay(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(file,
		[]byte(`{"server_endpoint_addr": "http://vote.example.com", "request_timeout": "30s"}`), 0o600))

	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"cli", "-c", file}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "http://vote.example.com", cfg.ServerEndpointAddr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestParseFlags_Overlay(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"cli", "-a", "http://localhost:9090", "-r", "5"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "http://localhost:9090", cfg.ServerEndpointAddr)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}
