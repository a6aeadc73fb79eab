package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
server:
  port: 9090
  read_timeout: "5s"
ai:
  provider: anthropic
  api_key: "yaml-key"
  model: "claude-from-yaml"
database:
  driver: postgres
  host: db
  user: ayur
  password: "p@ss"
  name: leads
minio:
  endpoint: "minio:9000"
  useSSL: false
`

func TestLoad_YAMLWithDefaults(t *testing.T) {
	cfg, err := Load(writeYAML(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, int64(50<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "anthropic", cfg.AI.Provider)
	assert.Equal(t, 42, cfg.AI.Seed)
	assert.True(t, cfg.Database.Enabled())
	assert.True(t, cfg.Minio.Enabled())
	assert.False(t, cfg.Minio.UseSSL)
	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, "ayurconnect-shares", cfg.Minio.BucketName)
	assert.Equal(t, "postgres://ayur:p%40ss@db:5432/leads?sslmode=disable", cfg.PostgresDSN())
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	t.Setenv("AI_MODEL", "claude-from-env")
	t.Setenv("PORT", "7070")

	cfg, err := Load(writeYAML(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, "claude-from-env", cfg.AI.Model)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("API_KEY", "env-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "env-key", cfg.AI.APIKey)
	assert.Equal(t, 10000, cfg.Server.Port)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, []string{"*"}, cfg.CORS.Origins())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:    ServerConfig{MaxBodyBytes: 1},
			AI:        AIConfig{Provider: "openai", APIKey: "k"},
			Auth:      AuthConfig{SessionTTL: time.Hour},
			RateLimit: RateLimitConfig{Rate: 1, Burst: 1},
		}
	}

	cfg := base()
	require.NoError(t, cfg.Validate())

	cfg = base()
	cfg.AI.Provider = "llama"
	require.ErrorContains(t, cfg.Validate(), "ai.provider")

	cfg = base()
	cfg.AI.APIKey = " "
	require.ErrorContains(t, cfg.Validate(), "api_key")

	cfg = base()
	cfg.Auth.RequireLogin = true
	cfg.Auth.JWTSecret = "short"
	require.ErrorContains(t, cfg.Validate(), "jwt_secret")

	cfg = base()
	cfg.Database.Driver = "sqlite"
	require.ErrorContains(t, cfg.Validate(), "database.driver")
}

func TestMySQLDSN(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{User: "u", Password: "p", Host: "h", Name: "n"}}
	assert.Equal(t, "u:p@tcp(h:3306)/n?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())

	cfg.Database.DSN = "explicit"
	assert.Equal(t, "explicit", cfg.MySQLDSN())
}
