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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt:
    secret: test-secret
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 24*3600, cfg.Auth.JWT.AccessTokenExpire)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "0 */5 * * * *", cfg.Metrics.StatsCron)
	assert.True(t, cfg.Auth.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.Auth.RateLimit.Burst)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowOrigins)
	assert.Same(t, cfg, GlobalConfig)
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: oracle
auth:
  jwt:
    secret: s
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsBadRateLimit(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt:
    secret: s
  rate_limit:
    enabled: true
    rps: 0
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	sqlite := DatabaseConfig{Driver: "sqlite", Database: "data.db"}
	assert.Equal(t, "file:data.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqlite.GetDSN())

	mem := DatabaseConfig{Driver: "sqlite", Database: "file:t1?mode=memory&cache=shared"}
	assert.Equal(t, "file:t1?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", mem.GetDSN())

	mysql := DatabaseConfig{Driver: "mysql", Host: "db", Port: 3306, Database: "issuehub", Username: "u", Password: "p"}
	assert.Equal(t, "u:p@tcp(db:3306)/issuehub?charset=utf8mb4&parseTime=True&loc=Local", mysql.GetDSN())
}
