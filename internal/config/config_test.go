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

	path := filepath.Join(t.TempDir(), "local.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
env: local
db_user: quote
db_name: quotes
http_server:
  address: "0.0.0.0:8080"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address)
	assert.Equal(t, 4*time.Second, cfg.Timeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 3306, cfg.DBPort)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, 5*time.Second, cfg.GanttTimeout)
	assert.Equal(t, "errors.log", cfg.ErrorLog)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{
		DBUser:     "quote",
		DBPassword: "secret",
		DBHost:     "db",
		DBPort:     3307,
		DBName:     "quotes",
		ParseTime:  true,
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "quote:secret@tcp(db:3307)/quotes")
	assert.Contains(t, dsn, "parseTime=true")
}
