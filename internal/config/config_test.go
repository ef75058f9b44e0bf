package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(lookupFrom(map[string]string{
		"DATABASE_URL":             "postgres://localhost/toyshop",
		"REDIS_DB":                 "2",
		"MINIO_USE_SSL":            "true",
		"CACHE_TTL":                "90s",
		"CATALOG_REFRESH_INTERVAL": "1m",
		"JWKS_URL":                 " https://auth.example.com/.well-known/jwks.json ",
		"PORT":                     "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/toyshop", cfg.Database.URL)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, 90*time.Second, cfg.Redis.TTL)
	assert.Equal(t, time.Minute, cfg.Catalog.RefreshInterval)
	assert.Equal(t, "https://auth.example.com/.well-known/jwks.json", cfg.Auth.JWKSURL)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	for _, key := range []string{"REDIS_DB", "MINIO_USE_SSL", "CACHE_TTL", "CATALOG_REFRESH_INTERVAL"} {
		cfg := Default()
		err := cfg.applyEnv(lookupFrom(map[string]string{key: "nope"}))
		assert.Error(t, err, key)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")

	cfg.Database.URL = "postgres://x"
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg.Auth.JWTSecret = "secret"
	assert.NoError(t, cfg.Validate())

	cfg.Catalog.RefreshInterval = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toyshop.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = "9090"

[database]
url = "postgres://file/toyshop"

[catalog]
table_file = "/etc/toyshop/catalog.toml"
`), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres://file/toyshop", cfg.Database.URL)
	assert.Equal(t, "/etc/toyshop/catalog.toml", cfg.Catalog.TableFile)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr, "defaults survive")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
