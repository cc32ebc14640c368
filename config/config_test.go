package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestParseOverridesOnlyGivenFields(t *testing.T) {
	cfg, err := Parse([]byte("baseUrl: http://localhost:5000\nrequestTimeout: 30s\nseed: 99\n"))
	require.NoError(t, err)
	assert.Equal(t, Config{
		BaseURL:        "http://localhost:5000",
		LatencyCeiling: DefaultLatencyCeiling,
		RequestTimeout: 30 * time.Second,
		Seed:           99,
	}, cfg)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("baseURL: http://localhost\n"))
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kasir.yaml")
	require.NoError(t, os.WriteFile(path, []byte("latencyCeiling: 1500ms\n"), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.LatencyCeiling)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"empty URL":        func(c *Config) { c.BaseURL = "" },
		"relative URL":     func(c *Config) { c.BaseURL = "/api" },
		"wrong scheme":     func(c *Config) { c.BaseURL = "ftp://example.com" },
		"zero ceiling":     func(c *Config) { c.LatencyCeiling = 0 },
		"negative timeout": func(c *Config) { c.RequestTimeout = -time.Second },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
