package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"storage":     "redis",
		"redis_addr":  "cache:6379",
		"redis_db":    3,
		"encrypt":     true,
		"session_ttl": "2h",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		var cfg Config
		cfg.LoadDefaults()
		parseJson(&cfg)

		assert.Equal(t, StorageRedis, cfg.Storage)
		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, 3, cfg.RedisDB)
		assert.True(t, cfg.Encrypt)
		assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
		assert.Equal(t, "gophnotes:", cfg.RedisPrefix, "absent keys keep earlier values")
	})

	t.Run("no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{Storage: "memory", SessionTTL: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "memory", cfg.Storage)
		assert.Equal(t, 42*time.Second, cfg.SessionTTL)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
