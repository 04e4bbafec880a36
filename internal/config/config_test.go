package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadAppliesDefaultsFilesAndEnv(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "base.yaml", `
server:
  port: ":8080"
db:
  name: dashboard
  user: rock
jwt:
  secret: ${JWT_SECRET}
outbox:
  interval: 5s
`)
	write(t, dir, "local.yaml", `
db:
  host: db.local
log:
  level: debug
`)
	write(t, dir, "secrets.env", "JWT_SECRET=from-secrets\n")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("SERVER_PORT", ":9090")
	t.Setenv("MQ_URL", "amqp://guest:guest@mq:5672/")

	cfg, err := Load("local", dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "db.local", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port, "default kept")
	assert.Equal(t, "rock", cfg.DB.User)
	assert.Equal(t, "from-secrets", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 5*time.Second, cfg.Outbox.Interval)
	assert.Equal(t, 100, cfg.Outbox.BatchSize)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.MQ.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadRequiresSecret(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "base.yaml", "db:\n  name: dashboard\n")
	t.Setenv("JWT_SECRET", "")

	_, err := Load("", dir)
	assert.ErrorContains(t, err, "jwt.secret")

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
}
