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
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "auth:\n  jwt_secret: s3cret\n"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "localhost:4001", cfg.Address)
	assert.Equal(t, 4*time.Second, cfg.Timeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, DriverJSON, cfg.Storage.Driver)
	assert.Equal(t, "./data", cfg.Storage.Path)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "bcrypt", cfg.Auth.PasswordScheme)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "env: local\nauth:\n  jwt_secret: s3cret\n"))
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("STORAGE_DSN", "file.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "file.db", cfg.Storage.DSN)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("CONFIG_PATH", writeConfig(t, "storage:\n  driver: mysql\nauth:\n  jwt_secret: s\n"))
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("CONFIG_PATH", writeConfig(t, "storage:\n  driver: mongo\nauth:\n  jwt_secret: s\n"))
	_, err = Load()
	assert.Error(t, err)
}

// Тест: тайм-аут записи не может быть короче самых долгих обработчиков
func TestLoad_WriteTimeout(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "http_server:\n  write_timeout: 4s\nauth:\n  jwt_secret: s\n"))
	_, err := Load()
	assert.ErrorContains(t, err, "write_timeout")

	t.Setenv("CONFIG_PATH", writeConfig(t, "auth:\n  jwt_secret: s\n"))
	t.Setenv("HTTP_WRITE_TIMEOUT", "20s")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, cfg.WriteTimeout)
}
