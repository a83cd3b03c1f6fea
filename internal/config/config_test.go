package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.URL)
	assert.Equal(t, "ws://localhost:8080/ws", cfg.Realtime.URL)
	assert.Equal(t, SessionBackendFile, cfg.Session.Backend)
	assert.Equal(t, 5, cfg.Realtime.ReconnectDelay)
	assert.Equal(t, 20.0, cfg.API.RateLimitRPS)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[api]
url = "https://clinic.example/api"
timeout = 3

[session]
backend = "redis"
profile = "front-desk"

[redis]
addr = "redis:6379"
ttl = 3600
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://clinic.example/api", cfg.API.URL)
	assert.Equal(t, 3, cfg.API.Timeout)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, "front-desk", cfg.Session.Profile)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, int64(3600), int64(cfg.SessionTTL().Seconds()))
	// не указанное в файле остаётся по умолчанию
	assert.Equal(t, 8090, cfg.Server.HTTPPort)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[api]
url = "https://clinic.example/api"
`)
	t.Setenv(EnvAPIURL, "http://10.0.0.5:8080/api")
	t.Setenv(EnvWSURL, "ws://10.0.0.5:8080/ws")
	t.Setenv(EnvSessionBackend, " Postgres ")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:8080/api", cfg.API.URL)
	assert.Equal(t, "ws://10.0.0.5:8080/ws", cfg.Realtime.URL)
	assert.Equal(t, SessionBackendPostgres, cfg.Session.Backend)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, `this is not toml = [`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, `
[session]
backend = "etcd"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, `
[server]
http_port = 70000
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, `
[api]
rate_limit_burst = -1
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := Default()
	cfg.Database.Password = "secret"

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=booking_client sslmode=disable",
		cfg.Database.DSN())
}
