package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_YAMLDefaultsAndEnv(t *testing.T) {
	p := writeYAML(t, `
app:
  app_env: staging
storage:
  driver: mongo
  mongo:
    uri: mongodb://localhost:27017
    timeout: 3s
auth:
  jwt_secret: 0123456789abcdef0123
reports:
  max_page_size: 50
`)
	t.Setenv("DATABASE_NAME", "alquiler_test")
	t.Setenv("ALERT_RECIPIENTS", "ops@example.com, admin@example.com")
	t.Setenv("RATE_LOGIN_WINDOW", "30s")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "staging", c.App.Env)
	assert.Equal(t, 3*time.Second, c.Storage.Mongo.Timeout)
	assert.Equal(t, "alquiler_test", c.Storage.Mongo.Database)
	assert.Equal(t, time.Hour, c.Auth.TokenTTL)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, 50, c.Reports.MaxPageSize)
	assert.Equal(t, 10, c.Reports.DefaultPageSize)
	assert.Equal(t, []string{"ops@example.com", "admin@example.com"}, c.Alerts.Recipients)
	assert.Equal(t, 30*time.Second, c.Rate.Login.Window)
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SECRET_KEY", "0123456789abcdef")
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "memory", c.Storage.Driver)
	assert.Equal(t, "log", c.Audit.Driver)
}

func TestLoad_AuditDSNSwitchesDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SECRET_KEY", "0123456789abcdef")
	t.Setenv("AUDIT_DSN", "postgres://localhost/audit")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", c.Audit.Driver)
}

func TestValidate(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	t.Setenv("SECRET_KEY", "short")
	t.Setenv("AUTH_PROVIDER", "firebase")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
	assert.Contains(t, err.Error(), "SECRET_KEY")
	assert.Contains(t, err.Error(), "FIREBASE_API_KEY")
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeYAML(t, "server: [unclosed"))
	assert.Error(t, err)
}
