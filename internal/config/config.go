package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr            = ":8080"
	defaultJWTTTL          = "24h"
	defaultVerifyCodeTTL   = "10m"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultVerifyPepper    = "change-me-verification-pepper"
	defaultEmailBackend    = "console"
	defaultSMSBackend      = "console"
	defaultBookingDaysOpen = "14"
)

// Config is the process configuration, read from environment variables.
// cmd/api loads .env first via godotenv.
type Config struct {
	AppEnv      string
	Addr        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	VerificationCodePepper string
	VerifyCodeTTL          time.Duration

	// How far ahead slot listings reach by default.
	BookingWindowDays int

	EmailBackend   string // console | api
	EmailAPIKey    string
	EmailAPIURL    string
	EmailFrom      string
	EmailFromName  string
	SMSBackend     string // console | api
	SMSAPIKey      string
	SMSAPIURL      string
	SMSFromNumber  string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Addr = getEnv("ADDR", defaultAddr)
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "salon.db"
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.VerificationCodePepper = strings.TrimSpace(getEnv("VERIFICATION_CODE_PEPPER", defaultVerifyPepper))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.VerifyCodeTTL, err = parseDurationEnv("VERIFY_CODE_TTL", defaultVerifyCodeTTL)
	if err != nil {
		return nil, err
	}

	cfg.BookingWindowDays, err = parseIntEnv("BOOKING_WINDOW_DAYS", defaultBookingDaysOpen)
	if err != nil {
		return nil, err
	}

	cfg.EmailBackend = strings.ToLower(getEnv("EMAIL_BACKEND", defaultEmailBackend))
	cfg.EmailAPIKey = os.Getenv("EMAIL_API_KEY")
	cfg.EmailAPIURL = os.Getenv("EMAIL_API_URL")
	cfg.EmailFrom = getEnv("EMAIL_FROM", "bookings@salon.local")
	cfg.EmailFromName = getEnv("EMAIL_FROM_NAME", "Beauty Salon")
	cfg.SMSBackend = strings.ToLower(getEnv("SMS_BACKEND", defaultSMSBackend))
	cfg.SMSAPIKey = os.Getenv("SMS_API_KEY")
	cfg.SMSAPIURL = os.Getenv("SMS_API_URL")
	cfg.SMSFromNumber = os.Getenv("SMS_FROM_NUMBER")

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.VerifyCodeTTL <= 0 {
		return fmt.Errorf("VERIFY_CODE_TTL must be > 0")
	}
	if cfg.BookingWindowDays <= 0 {
		return fmt.Errorf("BOOKING_WINDOW_DAYS must be > 0")
	}
	if cfg.EmailBackend != "console" && cfg.EmailBackend != "api" {
		return fmt.Errorf("EMAIL_BACKEND must be console or api")
	}
	if cfg.SMSBackend != "console" && cfg.SMSBackend != "api" {
		return fmt.Errorf("SMS_BACKEND must be console or api")
	}
	if cfg.EmailBackend == "api" && cfg.EmailAPIKey == "" {
		return fmt.Errorf("EMAIL_API_KEY must be set when EMAIL_BACKEND=api")
	}
	if cfg.SMSBackend == "api" && cfg.SMSAPIKey == "" {
		return fmt.Errorf("SMS_API_KEY must be set when SMS_BACKEND=api")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod JWT_SECRET must be set and not default")
		}
		if cfg.VerificationCodePepper == "" || cfg.VerificationCodePepper == defaultVerifyPepper {
			return fmt.Errorf("in prod VERIFICATION_CODE_PEPPER must be set and not default")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

func parseIntEnv(key, def string) (int, error) {
	raw := getEnv(key, def)
	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return n, nil
}
