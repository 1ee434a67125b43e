package config

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAccessTTL     = "15m"
	defaultRefreshTTL    = "168h"
	defaultCookiePath    = "/"
	defaultPort          = "8080"
	defaultAccessSecret  = "change-me-access-secret"
	defaultRefreshSecret = "change-me-refresh-secret"
)

// Config is the runtime configuration for the API server, read from the
// environment. Access and refresh secrets must differ: key separation is what
// keeps a leaked access key from minting refresh tokens.
type Config struct {
	AppEnv         string
	Port           string
	DatabaseURL    string
	AccessSecret   string
	RefreshSecret  string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	CookieSecure   bool
	CookieSameSite http.SameSite
	CookiePath     string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", "upasthit.db")
	cfg.AccessSecret = strings.TrimSpace(getEnv("JWT_ACCESS_SECRET", defaultAccessSecret))
	cfg.RefreshSecret = strings.TrimSpace(getEnv("JWT_REFRESH_SECRET", defaultRefreshSecret))

	var err error
	cfg.AccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.RefreshTTL, err = parseDurationEnv("JWT_REFRESH_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}

	// Production serves a cross-site frontend, hence SameSite=None + Secure.
	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", strconv.FormatBool(cfg.IsProd()))
	if cfg.IsProd() {
		cfg.CookieSameSite = http.SameSiteNoneMode
	} else {
		cfg.CookieSameSite = http.SameSiteLaxMode
	}
	cfg.CookiePath = strings.TrimSpace(getEnv("COOKIE_PATH", defaultCookiePath))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	log.Printf("auth config: env=%s accessTTL=%s refreshTTL=%s cookieSecure=%t",
		cfg.AppEnv, cfg.AccessTTL, cfg.RefreshTTL, cfg.CookieSecure)

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}

func validate(cfg *Config) error {
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("JWT_REFRESH_TTL must be > 0")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if cfg.IsProd() {
		if cfg.AccessSecret == defaultAccessSecret || cfg.RefreshSecret == defaultRefreshSecret {
			return fmt.Errorf("default JWT secrets are not allowed in production")
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}

func parseBoolEnv(key, fallback string) bool {
	raw := strings.TrimSpace(getEnv(key, fallback))
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}
