package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, 6*time.Hour, cfg.Storage.BackupInterval)
	assert.Equal(t, "memory", cfg.Counters.Type)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.Hour, cfg.Session.CleanupInterval)
	assert.Equal(t, 600, cfg.Drawing.MaxWidth)
	assert.Equal(t, 400, cfg.Drawing.MaxHeight)
	assert.Equal(t, 1500*time.Millisecond, cfg.Drawing.AnalysisDelay)
	assert.Equal(t, 10, cfg.Leaderboard.Size)
	assert.Contains(t, cfg.CORS.AllowedHeaders, "X-User-ID")
	assert.False(t, cfg.MCP.Enabled)
	assert.Same(t, cfg, Get())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
storage:
  type: disk
  data_dir: /tmp/nugget-chat
counters:
  type: sqlite
  path: /tmp/nugget.db
chat:
  reply_delay: 0s
mcp:
  enabled: true
  base_path: /tools
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "disk", cfg.Storage.Type)
	assert.Equal(t, "/tmp/nugget-chat", cfg.Storage.DataDir)
	assert.Equal(t, "sqlite", cfg.Counters.Type)
	assert.Equal(t, time.Duration(0), cfg.Chat.ReplyDelay)
	assert.True(t, cfg.MCP.Enabled)
	assert.Equal(t, "/tools", cfg.MCP.BasePath)
	// untouched sections keep their defaults
	assert.Equal(t, 10, cfg.Leaderboard.Size)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("NUGGET_SERVER_PORT", "7070")
	t.Setenv("NUGGET_LOG_LEVEL", "debug")
	t.Setenv("NUGGET_SESSION_TTL", "30m")

	path := writeConfig(t, "server:\n  port: 9090\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"port out of range", "server:\n  port: 70000\n"},
		{"unknown log level", "log:\n  level: loud\n"},
		{"unknown storage type", "storage:\n  type: redis\n"},
		{"leaderboard too large", "leaderboard:\n  size: 500\n"},
		{"malformed yaml", "server: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
