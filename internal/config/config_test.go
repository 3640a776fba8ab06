package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-profiles-api/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_SQLite(t *testing.T) {
	path := writeConfig(t, `
env: dev
storage:
  driver: sqlite
  path: /tmp/profiles.db
http_server:
  address: localhost:8082
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/profiles.db", cfg.Storage.Path)
	assert.Equal(t, "localhost:8082", cfg.HTTPServer.Addr)
	assert.Equal(t, "*", cfg.HTTPServer.AllowedOrigin)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.ShutdownTimeout)
}

func TestLoad_MongoDefaults(t *testing.T) {
	path := writeConfig(t, `
env: prod
storage:
  mongo_uri: mongodb://db:27017
http_server:
  address: 0.0.0.0:8082
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.DriverMongo, cfg.Storage.Driver)
	assert.Equal(t, "student_profiles", cfg.Storage.Database)
	assert.Equal(t, uint64(100), cfg.Storage.MaxPoolSize)
	assert.Equal(t, 10*time.Second, cfg.Storage.ConnectTimeout)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HTTP_SERVER_ADDR", "127.0.0.1:9000")

	path := writeConfig(t, `
env: dev
storage:
  driver: sqlite
  path: profiles.db
http_server:
  address: localhost:8082
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPServer.Addr)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"mongo without uri", "env: dev\nhttp_server:\n  address: x:1\n"},
		{"sqlite without path", "env: dev\nstorage:\n  driver: sqlite\nhttp_server:\n  address: x:1\n"},
		{"unknown driver", "env: dev\nstorage:\n  driver: redis\nhttp_server:\n  address: x:1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_ShippedProdConfigPinsOrigin(t *testing.T) {
	cfg, err := config.Load(filepath.Join("..", "..", "config", "prod.yaml"))
	require.NoError(t, err)

	assert.Equal(t, config.DriverMongo, cfg.Storage.Driver)
	assert.NotEmpty(t, cfg.HTTPServer.AllowedOrigin)
	assert.NotEqual(t, "*", cfg.HTTPServer.AllowedOrigin)
}
