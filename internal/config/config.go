package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Booking window settings. The slot grid is global: every resource shares
	// the same operating hours and slot duration.
	DayStart    string // "HH:MM", start of the bookable day
	DayEnd      string // "HH:MM", end of the bookable day
	SlotMinutes int    // slot grid duration in minutes
	LeadDays    int    // bookings allowed from today up to today+LeadDays

	// Resource photo storage.
	UploadDir string

	// Auth endpoint protection.
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "15m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Booking window defaults: 08:00-20:00, 60-minute slots, 30-day lead window.
	cfg.DayStart = getEnv("BOOKING_DAY_START", "08:00")
	cfg.DayEnd = getEnv("BOOKING_DAY_END", "20:00")

	cfg.SlotMinutes, err = getEnvAsInt("BOOKING_SLOT_MINUTES", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_SLOT_MINUTES: %w", err)
	}
	if cfg.SlotMinutes <= 0 {
		return nil, fmt.Errorf("BOOKING_SLOT_MINUTES must be positive")
	}

	cfg.LeadDays, err = getEnvAsInt("BOOKING_LEAD_DAYS", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_LEAD_DAYS: %w", err)
	}

	// Resource photo upload directory (default: ./uploads)
	cfg.UploadDir = getEnv("UPLOAD_DIR", "./uploads")

	// Per-IP rate limit for auth endpoints (default: 5 req/s, burst 10)
	rateStr := getEnv("RATE_LIMIT_PER_SEC", "5")
	cfg.RateLimitPerSec, err = strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_SEC: %w", err)
	}

	cfg.RateLimitBurst, err = getEnvAsInt("RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	// Response cache TTL for resource listings (default: 30s)
	cacheSeconds, err := getEnvAsInt("CACHE_TTL_SECONDS", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SECONDS: %w", err)
	}
	cfg.CacheTTL = time.Duration(cacheSeconds) * time.Second

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}
