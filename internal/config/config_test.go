package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, defaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "Asia/Kolkata", cfg.Location.String())
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.NominatimURL)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://bioscrap.in, https://admin.bioscrap.in ,")
	t.Setenv("NOMINATIM_URL", "http://geo.local/")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"https://bioscrap.in", "https://admin.bioscrap.in"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "http://geo.local", cfg.NominatimURL)
	assert.Equal(t, 5, cfg.RateLimitPerMinute)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")

	_, err := load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_TTL")
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus")

	_, err := load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIMEZONE")
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", "a-real-secret")
	_, err = load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEB3FORMS_ACCESS_KEY")

	t.Setenv("WEB3FORMS_ACCESS_KEY", "key")
	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
