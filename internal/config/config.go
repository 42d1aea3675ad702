package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName           = "Onboarding"
	defaultAppEnv            = "development"
	defaultPort              = "8080"
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
	defaultShutdownDelay     = 10 * time.Second
	defaultSubmissionLockTTL = 30 * time.Second
	defaultFormTTL           = 30 * time.Minute
	defaultSignInRateLimit   = 5
	shutdownSecondsEnvVar    = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar   = "SHUTDOWN_TIMEOUT"
	lockTTLSecondsEnvVar     = "SUBMISSION_LOCK_TTL_SECONDS"
	lockTTLDurEnvVar         = "SUBMISSION_LOCK_TTL"
	formTTLEnvVar            = "FORM_TTL"
	signInRateLimitEnvVar    = "SIGN_IN_RATE_LIMIT"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName           string
	AppEnv            string
	Port              string
	LogLevel          string
	LogFormat         string
	DatabaseURL       string
	RedisURL          string
	ShutdownPeriod    time.Duration
	SubmissionLockTTL time.Duration
	FormTTL           time.Duration
	SignInRateLimit   int
}

// Load reads configuration values from the environment and populates a Config instance.
// DATABASE_URL and REDIS_URL may be omitted in development, where in-memory
// collaborators are used instead.
func Load() (Config, error) {
	cfg := Config{
		AppName:           getEnv("APP_NAME", defaultAppName),
		AppEnv:            getEnv("APP_ENV", defaultAppEnv),
		Port:              getEnv("PORT", defaultPort),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", defaultLogFormat)),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		ShutdownPeriod:    defaultShutdownDelay,
		SubmissionLockTTL: defaultSubmissionLockTTL,
		FormTTL:           defaultFormTTL,
		SignInRateLimit:   defaultSignInRateLimit,
	}

	var err error
	if cfg.ShutdownPeriod, err = durationFromEnv(shutdownSecondsEnvVar, shutdownDurationEnvVar, cfg.ShutdownPeriod); err != nil {
		return Config{}, err
	}
	if cfg.SubmissionLockTTL, err = durationFromEnv(lockTTLSecondsEnvVar, lockTTLDurEnvVar, cfg.SubmissionLockTTL); err != nil {
		return Config{}, err
	}
	if cfg.FormTTL, err = durationFromEnv("", formTTLEnvVar, cfg.FormTTL); err != nil {
		return Config{}, err
	}
	if cfg.SubmissionLockTTL <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", lockTTLDurEnvVar, cfg.SubmissionLockTTL)
	}
	if cfg.FormTTL <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", formTTLEnvVar, cfg.FormTTL)
	}

	if v := os.Getenv(signInRateLimitEnvVar); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", signInRateLimitEnvVar, err)
		}
		cfg.SignInRateLimit = n
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the app runs in a local/development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

// durationFromEnv reads a whole-second value from secondsKey, falling back to a
// Go duration string in durationKey.
func durationFromEnv(secondsKey, durationKey string, fallback time.Duration) (time.Duration, error) {
	if secondsKey != "" {
		if v := os.Getenv(secondsKey); v != "" {
			seconds, err := strconv.Atoi(v)
			if err != nil {
				return 0, fmt.Errorf("invalid %s: %w", secondsKey, err)
			}
			return time.Duration(seconds) * time.Second, nil
		}
	}
	if v := os.Getenv(durationKey); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", durationKey, err)
		}
		return d, nil
	}
	return fallback, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
