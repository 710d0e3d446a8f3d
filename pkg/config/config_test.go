package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/daily-report-api/pkg/config"
)

func TestLoad_SinJWTSecret_Falla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrMissingJWTSecret)
}

func TestLoad_ValoresDesdeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("JWT_EXPIRATION_MINUTES", "30")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "p@ss/word")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL())
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.Cookie.Secure)
	assert.Contains(t, cfg.DB.ConnectionString(), "db:5432")
	assert.Contains(t, cfg.DB.ConnectionString(), "p%40ss%2Fword")
}

func TestLoad_ExpiracionPorDefecto24h(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("JWT_EXPIRATION_MINUTES", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL())
}

func TestDBConfig_DatabaseURLTienePrioridad(t *testing.T) {
	c := config.DBConfig{DatabaseURL: "postgres://u:p@h:1/x", Host: "otro"}
	assert.Equal(t, "postgres://u:p@h:1/x", c.ConnectionString())
}
