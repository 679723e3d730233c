package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	for _, key := range []string{"JWT_SECRET", "DATABASE_DRIVER", "SERVER_MODE", "STORAGE_TYPE"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9000"
  mode: debug
database:
  driver: sqlite
  path: test.db
jwt:
  secret: dev-secret
  expire_hours: 2
storage:
  type: minio
redis:
  unread_ttl_seconds: 30
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpireTime)
	assert.Equal(t, 30*time.Second, cfg.Redis.UnreadTTL())
	assert.Equal(t, int64(5), cfg.Storage.MaxUploadMB)
	assert.Equal(t, 600, cfg.RateLimit.MaxRequests)
	assert.False(t, cfg.ForceMigrate)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing secret", "database:\n  driver: sqlite\n"},
		{"short secret in release", "server:\n  mode: release\njwt:\n  secret: short\ndatabase:\n  driver: sqlite\n"},
		{"unknown driver", "jwt:\n  secret: dev-secret\ndatabase:\n  driver: postgres\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestUnreadTTLDefault(t *testing.T) {
	assert.Equal(t, 5*time.Minute, RedisConfig{}.UnreadTTL())
}
