package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Rate limiting, ulule/limiter format (e.g. "100-M" = 100 req/minute)
	RateLimitFormat string

	CORSAllowedOrigins []string

	// Currency registry read-through cache
	CurrencyCacheSize int64

	// External exchange-rate feed
	RateFeedEnabled      bool
	RateFeedURL          string
	RateFeedSource       string
	RateFeedSyncInterval time.Duration

	// External AI forecasting service
	ForecastServiceURL string
	ForecastTimeout    time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "erp-backend")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CURRENCY_CACHE_SIZE", 4096)
	viper.SetDefault("RATE_FEED_ENABLED", false)
	viper.SetDefault("RATE_FEED_URL", "")
	viper.SetDefault("RATE_FEED_SOURCE", "OPEN_EXCHANGE_RATES")
	viper.SetDefault("RATE_FEED_SYNC_INTERVAL", "1h")
	viper.SetDefault("FORECAST_SERVICE_URL", "")
	viper.SetDefault("FORECAST_TIMEOUT", "30s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RateLimitFormat = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")
	cfg.CurrencyCacheSize = viper.GetInt64("CURRENCY_CACHE_SIZE")

	cfg.RateFeedEnabled = viper.GetBool("RATE_FEED_ENABLED")
	cfg.RateFeedURL = viper.GetString("RATE_FEED_URL")
	cfg.RateFeedSource = viper.GetString("RATE_FEED_SOURCE")

	syncIntervalStr := viper.GetString("RATE_FEED_SYNC_INTERVAL")
	syncInterval, err := time.ParseDuration(syncIntervalStr)
	if err != nil {
		syncInterval = time.Hour
		log.Printf("Warning: Invalid value for RATE_FEED_SYNC_INTERVAL (%q). Defaulting to %s.\n", syncIntervalStr, syncInterval)
	}
	cfg.RateFeedSyncInterval = syncInterval

	cfg.ForecastServiceURL = viper.GetString("FORECAST_SERVICE_URL")
	forecastTimeoutStr := viper.GetString("FORECAST_TIMEOUT")
	forecastTimeout, err := time.ParseDuration(forecastTimeoutStr)
	if err != nil {
		forecastTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for FORECAST_TIMEOUT (%q). Defaulting to %s.\n", forecastTimeoutStr, forecastTimeout)
	}
	cfg.ForecastTimeout = forecastTimeout

	if cfg.RateFeedEnabled && cfg.RateFeedURL == "" {
		log.Println("Warning: RATE_FEED_ENABLED is set but RATE_FEED_URL is empty; feed sync will be disabled.")
		cfg.RateFeedEnabled = false
	}

	return cfg, nil
}
