package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/codetesla51/stash/store"
	"github.com/codetesla51/stash/webstorage"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
mode: development
persistence_allowed: false
durable:
  driver: redis
  addr: localhost:6379
  namespace: app
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Mode)
	assert.False(t, cfg.PersistenceAllowed)
	assert.Equal(t, Backend{Driver: "redis", Addr: "localhost:6379", Namespace: "app"}, cfg.Durable)
	assert.Equal(t, "memory", cfg.Session.Driver, "unset sections keep defaults")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "mode: development\n")
	t.Setenv("STASH_MODE", "production")
	t.Setenv("STASH_SESSION_QUOTA_BYTES", "4096")
	t.Setenv("STASH_DURABLE_DRIVER", "sqlite")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Mode)
	assert.Equal(t, 4096, cfg.Session.QuotaBytes)
	assert.Equal(t, "sqlite", cfg.Durable.Driver)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("/nonexistent/stash.yaml")
	assert.Error(t, err)

	_, err = Load(writeFile(t, "mode: [unterminated"))
	assert.Error(t, err)

	t.Setenv("STASH_SESSION_QUOTA_BYTES", "lots")
	_, err = Load("")
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		backend Backend
		wantErr bool
	}{
		{name: "memory", backend: Backend{Driver: "memory"}},
		{name: "empty driver", backend: Backend{}},
		{name: "redis", backend: Backend{Driver: "redis", Addr: mr.Addr(), Namespace: "local"}},
		{name: "redis without addr", backend: Backend{Driver: "redis"}, wantErr: true},
		{name: "sqlite", backend: Backend{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "stash.db")}},
		{name: "sqlite without dsn", backend: Backend{Driver: "sqlite"}, wantErr: true},
		{name: "postgres without dsn", backend: Backend{Driver: "postgres"}, wantErr: true},
		{name: "unknown", backend: Backend{Driver: "etcd"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := OpenStore(tt.backend)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { closeStore(s) })

			require.NoError(t, s.Set("k", "v"))
			val, ok, err := s.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v", val)
		})
	}
}

func TestOpen(t *testing.T) {
	cfg := Default()
	cfg.Mode = "development"
	cfg.Session.QuotaBytes = 64

	client, closeFn, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, client.Local.SetItem("k", "v"))
	got, err := client.Local.GetItem("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	err = client.Session.SetItem("big", string(make([]byte, 128)))
	assert.ErrorIs(t, err, store.ErrQuotaExceeded)
}

func TestOpenPersistenceDisallowed(t *testing.T) {
	cfg := Default()
	cfg.PersistenceAllowed = false

	client, closeFn, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, client.Local.SetItem("k", "v"))
	assert.Equal(t, 0, client.Local.Length())
}

func TestOpenErrors(t *testing.T) {
	cfg := Default()
	cfg.Mode = "staging"
	_, _, err := Open(cfg, zap.NewNop())
	assert.Error(t, err)

	cfg = Default()
	cfg.Session.Driver = "etcd"
	_, _, err = Open(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))

	cfg.Mode = webstorage.Development.String()
	logger, err = NewLogger(cfg)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	cfg.LogLevel = "warn"
	logger, err = NewLogger(cfg)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))

	cfg.LogLevel = "loud"
	_, err = NewLogger(cfg)
	assert.Error(t, err)
}
