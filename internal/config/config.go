package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level    string // debug, info, warn, error
	Format   string // json or console
	Output   string // stdout, stderr or file
	FilePath string
}

// RateLimitConfig controls per-user throttling on the gateway.
type RateLimitConfig struct {
	Requests int           // allowed requests per window
	Window   time.Duration // window length
}

// RedisConfig points the gateway at a shared Redis. Empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config holds all application configuration loaded from environment.
type Config struct {
	AppName      string
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	Logging      LoggingConfig

	// Server tier
	DBDSN string

	// Gateway tier
	ServerURL     string
	ServerTimeout time.Duration
	RateLimit     RateLimitConfig
	Redis         RedisConfig
}

// LoadServer loads the configuration of the server tier.
func LoadServer() (*Config, error) {
	cfg, err := loadCommon("shareit-server", ":9090")
	if err != nil {
		return nil, err
	}

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	return cfg, nil
}

// LoadGateway loads the configuration of the gateway tier.
func LoadGateway() (*Config, error) {
	cfg, err := loadCommon("shareit-gateway", ":8080")
	if err != nil {
		return nil, err
	}

	// Upstream server URL is required
	cfg.ServerURL = os.Getenv("SHAREIT_SERVER_URL")
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("SHAREIT_SERVER_URL is required")
	}

	cfg.ServerTimeout, err = getEnvAsDuration("SHAREIT_SERVER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	// Per-user rate limit (default: 100 requests per minute)
	cfg.RateLimit.Requests, err = getEnvAsInt("RATE_LIMIT_REQUESTS", 100)
	if err != nil {
		return nil, err
	}
	if cfg.RateLimit.Requests < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
	}
	cfg.RateLimit.Window, err = getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	if cfg.RateLimit.Window <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}

	// Redis is optional; the limiter falls back to process memory.
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB, err = getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadCommon(appName, defaultAddr string) (*Config, error) {
	// Load .env file if it exists; a missing file is not an error.
	_ = godotenv.Load()

	cfg := &Config{AppName: appName}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultAddr)

	cfg.Logging = LoggingConfig{
		Level:    getEnv("LOG_LEVEL", "info"),
		Format:   getEnv("LOG_FORMAT", defaultLogFormat(cfg.IsProduction)),
		Output:   getEnv("LOG_OUTPUT", "stdout"),
		FilePath: getEnv("LOG_FILE_PATH", ""),
	}

	return cfg, nil
}

func defaultLogFormat(isProduction bool) string {
	if isProduction {
		return "json"
	}
	return "console"
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

// getEnvAsDuration parses values like "15s" or "1m".
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}
