package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/uploads/", cfg.Media.URLPrefix)
	assert.Equal(t, 7*24*60, cfg.JWT.ExpMin)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8081
db:
  driver: MySQL
  name: pups
media:
  url_prefix: /static
log_level: debug
`), 0o644))
	t.Setenv("PUPSHARE_JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "pups", cfg.DB.Name)
	assert.Equal(t, "/static/", cfg.Media.URLPrefix)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  driver: postgres\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan *Config, 16)
	require.NoError(t, Watch(ctx, path, func(c *Config) { changed <- c }, nil))

	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o644))
	// a write can surface as several events, the first possibly on a truncated file
	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changed:
			if c.LogLevel == "warn" {
				return
			}
		case <-deadline:
			t.Fatal("config change not observed")
		}
	}
}
