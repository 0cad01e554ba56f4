package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config gathers every environment-driven setting of the gateway so main
// and app stay free of os.Getenv calls.
type Config struct {
	Port   string
	AppEnv string

	JWTSecret  string
	SessionTTL time.Duration

	BackendBaseURL string
	BackendTimeout time.Duration

	// memory | redis | postgres
	StoreDriver string
	RedisAddr   string
	DB          DBConfig

	KafkaBroker string

	GeocodeURL       string
	GeocodeUserAgent string
	GeocodeRPS       float64

	ConfigFreshness time.Duration
	// WorkTimezone is the IANA zone the HH:MM work schedule is written in.
	WorkTimezone string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

// ConfigFreshness default matches the dashboards' five minute refresh.
const defaultConfigFreshness = 5 * time.Minute

const devJWTSecret = "dev-secret-key-change-in-production"

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required when APP_ENV=production")

func FromEnv() Config {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		// Use a default for development - should be overridden in production
		jwtSecret = devJWTSecret
	}

	return Config{
		Port:             getEnv("PORT", "3000"),
		AppEnv:           getEnv("APP_ENV", "development"),
		JWTSecret:        jwtSecret,
		SessionTTL:       getDuration("SESSION_TTL", 24*time.Hour),
		BackendBaseURL:   strings.TrimRight(getEnv("BACKEND_BASE_URL", "http://localhost:8080"), "/"),
		BackendTimeout:   getDuration("BACKEND_TIMEOUT", 8*time.Second),
		StoreDriver:      strings.ToLower(getEnv("STORE_DRIVER", "memory")),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		KafkaBroker:      os.Getenv("KAFKA_BROKER"),
		GeocodeURL:       strings.TrimRight(getEnv("GEOCODE_URL", "https://nominatim.openstreetmap.org"), "/"),
		GeocodeUserAgent: getEnv("GEOCODE_USER_AGENT", "go-attendance/1.0"),
		GeocodeRPS:       getFloat("GEOCODE_RPS", 1),
		ConfigFreshness:  getDuration("CONFIG_FRESHNESS", defaultConfigFreshness),
		WorkTimezone:     getEnv("WORK_TIMEZONE", "Asia/Colombo"),
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate rejects settings the gateway must not start with.
func (c Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == devJWTSecret) {
		return ErrMissingJWTSecret
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location loads WorkTimezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.WorkTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_TIMEZONE %q: %w", c.WorkTimezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}
