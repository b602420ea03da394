package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Every environment variable is read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Active data provider: fmp, finnhub, yahoo
	Provider string

	// Provider credentials and budgets
	FMP     ProviderConfig
	Finnhub ProviderConfig
	Yahoo   ProviderConfig

	// Cache TTL tiers
	TTL TTLConfig

	// Symbols refreshed by the scheduler
	TrackedSymbols []string

	// HTTP client
	HTTPTimeout time.Duration

	// Database (optional metrics/score sink)
	Database DatabaseConfig

	// Redis (optional shared snapshot cache)
	Redis RedisConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// ProviderConfig holds one upstream vendor's credentials and call budget.
// Limits default to a margin below each vendor's advertised free-tier
// ceiling so bursts from overlapping jobs never trip a ban.
type ProviderConfig struct {
	APIKey     string
	BaseURL    string
	RateLimit  int // max calls per window
	RateWindow time.Duration
}

// TTLConfig holds cache lifetimes tiered by data volatility.
type TTLConfig struct {
	Quote   time.Duration // real-time-ish quotes
	Metrics time.Duration // fundamentals
	Profile time.Duration // static company data
	Market  time.Duration // index/indicator/commodity snapshots
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL     string
	Enabled bool

	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// Load reads configuration from environment variables.
// This is the only function in the codebase that calls os.Getenv.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Provider: strings.ToLower(getEnv("PROVIDER", "fmp")),

		FMP: ProviderConfig{
			APIKey:     getEnv("FMP_API_KEY", ""),
			BaseURL:    getEnv("FMP_BASE_URL", "https://financialmodelingprep.com/api/v3"),
			RateLimit:  getEnvAsInt("FMP_RATE_LIMIT", 25),
			RateWindow: getEnvAsDuration("FMP_RATE_WINDOW", "10s"),
		},
		Finnhub: ProviderConfig{
			APIKey:     getEnv("FINNHUB_API_KEY", ""),
			BaseURL:    getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
			RateLimit:  getEnvAsInt("FINNHUB_RATE_LIMIT", 25),
			RateWindow: getEnvAsDuration("FINNHUB_RATE_WINDOW", "1s"),
		},
		Yahoo: ProviderConfig{
			BaseURL:    getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			RateLimit:  getEnvAsInt("YAHOO_RATE_LIMIT", 7),
			RateWindow: getEnvAsDuration("YAHOO_RATE_WINDOW", "60s"),
		},

		TTL: TTLConfig{
			Quote:   getEnvAsDuration("TTL_QUOTE", "1m"),
			Metrics: getEnvAsDuration("TTL_METRICS", "1h"),
			Profile: getEnvAsDuration("TTL_PROFILE", "24h"),
			Market:  getEnvAsDuration("TTL_MARKET", "5m"),
		},

		TrackedSymbols: getEnvAsList("TRACKED_SYMBOLS", nil),

		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", "10s"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Enabled:         getEnv("DATABASE_URL", "") != "",
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	switch c.Provider {
	case "fmp", "finnhub", "yahoo":
	default:
		return fmt.Errorf("PROVIDER must be one of: fmp, finnhub, yahoo")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	return nil
}

// ProviderFor returns the credentials/budget block for the named provider.
func (c *Config) ProviderFor(name string) ProviderConfig {
	switch strings.ToLower(name) {
	case "finnhub":
		return c.Finnhub
	case "yahoo":
		return c.Yahoo
	default:
		return c.FMP
	}
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, strings.ToUpper(s))
		}
	}
	return out
}
