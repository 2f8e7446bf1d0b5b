package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Upstream school API (courses, locations, availability, bookings, CMS).
	SchoolAPIBaseURL       string `mapstructure:"SCHOOL_API_BASE_URL"`
	SchoolAPIKey           string `mapstructure:"SCHOOL_API_KEY"`
	UpstreamTimeoutSeconds int    `mapstructure:"UPSTREAM_TIMEOUT_SECONDS"`

	// Checkout defaults. VAT rate is only a fallback; the live rate comes
	// from the upstream /booking/settings endpoint.
	DefaultVATRate         float64 `mapstructure:"DEFAULT_VAT_RATE"`
	SessionTTLMinutes      int     `mapstructure:"SESSION_TTL_MINUTES"`
	SessionCookieName      string  `mapstructure:"SESSION_COOKIE_NAME"`
	SessionSigningSecret   string  `mapstructure:"SESSION_SIGNING_SECRET"`
	ContentCacheTTLMinutes int     `mapstructure:"CONTENT_CACHE_TTL_MINUTES"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB  int    `mapstructure:"REDIS_SESSION_DB"`
	RedisContentDB  int    `mapstructure:"REDIS_CONTENT_DB"`
	RedisWarmerDB   int    `mapstructure:"REDIS_WARMER_DB"`
	CacheWarmPeriod string `mapstructure:"CACHE_WARM_PERIOD"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("SCHOOL_API_BASE_URL", "http://localhost:9000/api")
	viper.SetDefault("SCHOOL_API_KEY", "")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 20)
	viper.SetDefault("DEFAULT_VAT_RATE", 0.2)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("SESSION_COOKIE_NAME", "checkout_session")
	viper.SetDefault("SESSION_SIGNING_SECRET", "dev-only-secret")
	viper.SetDefault("CONTENT_CACHE_TTL_MINUTES", 15)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_CONTENT_DB", 1)
	viper.SetDefault("REDIS_WARMER_DB", 2)
	viper.SetDefault("CACHE_WARM_PERIOD", "10m")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UpstreamTimeout returns the client-side timeout for calls to the school API.
func UpstreamTimeout() time.Duration {
	secs := AppConfig.UpstreamTimeoutSeconds
	if secs <= 0 {
		secs = 20
	}
	return time.Duration(secs) * time.Second
}

// SessionTTL returns the checkout session lifetime.
func SessionTTL() time.Duration {
	mins := AppConfig.SessionTTLMinutes
	if mins <= 0 {
		mins = 30
	}
	return time.Duration(mins) * time.Minute
}

// ContentCacheTTL returns the lifetime of cached CMS and settings data.
func ContentCacheTTL() time.Duration {
	mins := AppConfig.ContentCacheTTLMinutes
	if mins <= 0 {
		mins = 15
	}
	return time.Duration(mins) * time.Minute
}
