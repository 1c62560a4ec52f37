package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAppEnv            = "dev"
	defaultHTTPAddr          = ":8080"
	defaultDatabaseURL       = "file:bioscrap?mode=memory&cache=shared"
	defaultSessionSecret     = "change-me-session-secret"
	defaultSessionTTL        = "2h"
	defaultTimezone          = "Asia/Kolkata"
	defaultFormSubmitURL     = "https://formsubmit.co/your-email@example.com"
	defaultWeb3FormsURL      = "https://api.web3forms.com/submit"
	defaultNominatimURL      = "https://nominatim.openstreetmap.org"
	defaultNominatimCountry  = "in"
	defaultHTTPClientTimeout = "10s"
	defaultRateLimitPerMin   = 60
	defaultRateLimitBurst    = 10
	defaultCleanupInterval   = "10m"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	SessionSecret string
	SessionTTL    time.Duration
	Location      *time.Location

	FormSubmitURL      string
	Web3FormsURL       string
	Web3FormsAccessKey string
	NominatimURL       string
	NominatimCountry   string
	HTTPClientTimeout  time.Duration

	CORSAllowedOrigins []string
	RateLimitPerMinute int
	RateLimitBurst     int
	CleanupInterval    time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", defaultAppEnv)
	v.SetDefault("HTTP_ADDR", defaultHTTPAddr)
	v.SetDefault("DATABASE_URL", defaultDatabaseURL)
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("SESSION_TTL", defaultSessionTTL)
	v.SetDefault("TIMEZONE", defaultTimezone)
	v.SetDefault("FORMSUBMIT_URL", defaultFormSubmitURL)
	v.SetDefault("WEB3FORMS_URL", defaultWeb3FormsURL)
	v.SetDefault("WEB3FORMS_ACCESS_KEY", "")
	v.SetDefault("NOMINATIM_URL", defaultNominatimURL)
	v.SetDefault("NOMINATIM_COUNTRY", defaultNominatimCountry)
	v.SetDefault("HTTP_CLIENT_TIMEOUT", defaultHTTPClientTimeout)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMin)
	v.SetDefault("RATE_LIMIT_BURST", defaultRateLimitBurst)
	v.SetDefault("CLEANUP_INTERVAL", defaultCleanupInterval)

	cfg := &Config{
		AppEnv:             strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		HTTPAddr:           strings.TrimSpace(v.GetString("HTTP_ADDR")),
		DatabaseURL:        strings.TrimSpace(v.GetString("DATABASE_URL")),
		SessionSecret:      strings.TrimSpace(v.GetString("SESSION_SECRET")),
		FormSubmitURL:      strings.TrimSpace(v.GetString("FORMSUBMIT_URL")),
		Web3FormsURL:       strings.TrimSpace(v.GetString("WEB3FORMS_URL")),
		Web3FormsAccessKey: strings.TrimSpace(v.GetString("WEB3FORMS_ACCESS_KEY")),
		NominatimURL:       strings.TrimRight(strings.TrimSpace(v.GetString("NOMINATIM_URL")), "/"),
		NominatimCountry:   strings.TrimSpace(v.GetString("NOMINATIM_COUNTRY")),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
	}

	var err error
	if cfg.SessionTTL, err = parseDuration(v, "SESSION_TTL"); err != nil {
		return nil, err
	}
	if cfg.HTTPClientTimeout, err = parseDuration(v, "HTTP_CLIENT_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.CleanupInterval, err = parseDuration(v, "CLEANUP_INTERVAL"); err != nil {
		return nil, err
	}

	tz := strings.TrimSpace(v.GetString("TIMEZONE"))
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE value %q: %w", tz, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.HTTPClientTimeout <= 0 {
		return fmt.Errorf("HTTP_CLIENT_TIMEOUT must be > 0")
	}
	if cfg.CleanupInterval <= 0 {
		return fmt.Errorf("CLEANUP_INTERVAL must be > 0")
	}
	if cfg.RateLimitPerMinute <= 0 || cfg.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be > 0")
	}
	if cfg.FormSubmitURL == "" {
		return fmt.Errorf("FORMSUBMIT_URL must not be empty")
	}

	if cfg.IsProduction() {
		if isEmptyOrDefault(cfg.SessionSecret, defaultSessionSecret) {
			return fmt.Errorf("in prod/release SESSION_SECRET must be set and not default")
		}
		if cfg.Web3FormsAccessKey == "" {
			return fmt.Errorf("in prod/release WEB3FORMS_ACCESS_KEY must be set")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDuration(v *viper.Viper, name string) (time.Duration, error) {
	value := strings.TrimSpace(v.GetString(name))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
