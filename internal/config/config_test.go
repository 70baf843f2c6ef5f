package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithRequiredEnv(t *testing.T) {
	t.Setenv("ORGTREE_DATABASE__URL", "postgres://localhost/orgtree")
	t.Setenv("ORGTREE_JWT__SECRET_KEY", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/orgtree", cfg.Database.URL)
	assert.Equal(t, "secret", cfg.JWT.SecretKey)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenDuration)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9999"
database:
  url: postgres://file-host/orgtree
jwt:
  secret_key: file-secret
  token_duration: 1h
`), 0o600))
	t.Setenv("ORGTREE_SERVER__PORT", "7777")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port, "env should override file")
	assert.Equal(t, "postgres://file-host/orgtree", cfg.Database.URL)
	assert.Equal(t, time.Hour, cfg.JWT.TokenDuration)
}

func TestLoad_MissingRequiredSettings(t *testing.T) {
	t.Setenv("ORGTREE_DATABASE__URL", "")
	t.Setenv("ORGTREE_JWT__SECRET_KEY", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.url")

	t.Setenv("ORGTREE_DATABASE__URL", "postgres://localhost/orgtree")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret_key")
}
