package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDB, EnvLogLevel, EnvOllama, EnvModel, EnvLocation} {
		t.Setenv(k, "")
	}
	// Keep the user's real config file out of the tests.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
db:
  path: /tmp/people.db
  sync: full
log:
  level: DEBUG
ai:
  model: mistral
  timeout: 30s
default_location: Lisbon
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/people.db", cfg.DB.Path)
	assert.True(t, cfg.DB.WAL, "unset keys keep their defaults")
	assert.Equal(t, "FULL", cfg.DB.Sync)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "mistral", cfg.AI.Model)
	assert.Equal(t, "http://localhost:11434", cfg.AI.Host)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "Lisbon", cfg.DefaultLocation)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "ai:\n  model: mistral\n")
	t.Setenv(EnvModel, "qwen2.5")
	t.Setenv(EnvOllama, "gpu-box:11434")
	t.Setenv(EnvDB, "/data/kith.db")
	t.Setenv(EnvLocation, "Porto")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "qwen2.5", cfg.AI.Model)
	assert.Equal(t, "http://gpu-box:11434", cfg.AI.Host)
	assert.Equal(t, "/data/kith.db", cfg.DB.Path)
	assert.Equal(t, "Porto", cfg.DefaultLocation)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "log:\n  level: chatty\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level must be one of")

	_, err = Load(writeConfig(t, "db:\n  sync: sometimes\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db.sync must be one of")

	_, err = Load(writeConfig(t, "ai: [not, a, map]\n"))
	assert.Error(t, err)
}
