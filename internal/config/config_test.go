package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PROMPTDECK_DB", "PROMPTDECK_ACTOR", "PROMPTDECK_FORMAT", "PROMPTDECK_REDIS_URL", "PROMPTDECK_LOG_LEVEL", "DEBUG"} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
actor: alice
format: text
server:
  addr: ":9000"
  auto_advance_delay: 1500ms
catalog:
  page_size: 12
  no_placeholders: true
logging:
  level: warn
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.Actor)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 1500*time.Millisecond, cfg.Server.AutoAdvanceDelay)
	assert.Equal(t, 24*time.Hour, cfg.Server.SessionTTL)
	assert.Equal(t, 12, cfg.Catalog.PageSize)
	assert.True(t, cfg.Catalog.NoPlaceholders)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("actor: alice\ndb: /tmp/a.sqlite\n"), 0o644))

	t.Setenv("PROMPTDECK_ACTOR", "bob")
	t.Setenv("PROMPTDECK_DB", "/tmp/b.sqlite")
	t.Setenv("PROMPTDECK_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("DEBUG", "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bob", cfg.Actor)
	assert.Equal(t, "/tmp/b.sqlite", cfg.DB)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server: [not, a, map"), 0o644))
	_, err := Load(bad)
	require.Error(t, err)

	t.Setenv("PROMPTDECK_FORMAT", "edn")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestSaveThenLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Actor = "carol"
	cfg.Catalog.PageSize = 6
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDBPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROMPTDECK_CONFIG_DIR", "/tmp/pd")
	cfg := Default()
	p, err := cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/pd", "catalog.sqlite"), p)

	cfg.DB = "/data/x.sqlite"
	p, err = cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, "/data/x.sqlite", p)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := LoggingConfig{Level: "nonsense", Format: "json"}.NewLogger(&buf)
	assert.Equal(t, log.InfoLevel, l.GetLevel())
	l.WithField("k", "v").Info("hello")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "{"))

	l = LoggingConfig{Level: "debug"}.NewLogger(&buf)
	assert.Equal(t, log.DebugLevel, l.GetLevel())
}
