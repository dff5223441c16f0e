package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.SeedOnStart)
	assert.Equal(t, 120, cfg.WriteRatePerMinute)
	assert.Nil(t, cfg.CORSAllowedOrigins)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_NAME=fromfile\nPORT=9999\n"), 0o600))

	t.Setenv("ENV_FILE", envFile)
	t.Setenv("PORT", "7000")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,http://localhost:3000")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("DB_MAX_IDLE_CONNS", "-3")

	cfg := Load()

	assert.Equal(t, "7000", cfg.Port, "process env wins over the file")
	assert.Equal(t, "fromfile", cfg.DBName)
	assert.Equal(t, []string{"https://a.example", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 5, cfg.DBMaxIdleConns, "non-positive values fall back")
}

func TestValidate(t *testing.T) {
	base := Config{DBDriver: "postgres", Env: "dev", JWTSecret: DefaultJWTSecret}
	require.NoError(t, base.Validate())

	prod := base
	prod.Env = "prod"
	assert.Error(t, prod.Validate())
	prod.JWTSecret = "a-real-secret"
	assert.NoError(t, prod.Validate())

	badDriver := base
	badDriver.DBDriver = "mysql"
	assert.Error(t, badDriver.Validate())

	halfTLS := base
	halfTLS.TLSCertFile = "cert.pem"
	assert.Error(t, halfTLS.Validate())
}

func TestDatabaseURL(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBName: "itadmin", DBUser: "u", DBPass: "p@ss", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/itadmin?sslmode=disable", cfg.DatabaseURL())
	assert.Equal(t, "host=db port=5432 dbname=itadmin user=u password=p@ss sslmode=disable", cfg.DSN())
}
