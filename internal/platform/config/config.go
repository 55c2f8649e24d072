// Package config loads runtime settings from the environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/janisto/guardhire/internal/service/marketplace"
)

const (
	defaultPort              = "8080"
	defaultTimeout           = 15 * time.Second
	defaultLoginPath         = "/login"
	defaultGuardRedirectPath = "/guard/dashboard"
	// Room for the 5 MiB profile picture plus the text fields.
	defaultMaxUploadBytes = 6 << 20
)

// Config holds all runtime settings.
type Config struct {
	Port              string
	APIBaseURL        string
	APIToken          string
	APITimeout        time.Duration
	LoginPath         string
	GuardRedirectPath string
	MaxUploadBytes    int64
	AllowedOrigins    []string
	UseMockAPI        bool
	LogLevel          zapcore.Level
}

// Load reads an optional .env file and then the process environment. Missing
// .env files are ignored; malformed values are reported.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from the given lookup function.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		Port:              get("PORT", defaultPort),
		APIBaseURL:        strings.TrimRight(get("MARKETPLACE_API_URL", marketplace.DefaultBaseURL), "/"),
		APIToken:          get("MARKETPLACE_API_TOKEN", ""),
		APITimeout:        defaultTimeout,
		LoginPath:         get("LOGIN_PATH", defaultLoginPath),
		GuardRedirectPath: get("GUARD_REDIRECT_PATH", defaultGuardRedirectPath),
		MaxUploadBytes:    defaultMaxUploadBytes,
		LogLevel:          zapcore.InfoLevel,
	}

	var errs []error

	if _, err := url.ParseRequestURI(cfg.APIBaseURL); err != nil {
		errs = append(errs, fmt.Errorf("MARKETPLACE_API_URL: %w", err))
	}
	if v := get("MARKETPLACE_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("MARKETPLACE_TIMEOUT: invalid duration %q", v))
		} else {
			cfg.APITimeout = d
		}
	}
	if v := get("MAX_UPLOAD_BYTES", ""); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES: invalid size %q", v))
		} else {
			cfg.MaxUploadBytes = n
		}
	}
	if v := get("MARKETPLACE_MOCK", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("MARKETPLACE_MOCK: %w", err))
		}
		cfg.UseMockAPI = b
	}
	if v := get("LOG_LEVEL", ""); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
		}
	}
	if v := get("CORS_ALLOWED_ORIGINS", ""); v != "" {
		for o := range strings.SplitSeq(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}
