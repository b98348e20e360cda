package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Corpus    CorpusConfig
	SearchLog SearchLogConfig `mapstructure:"search_log"`
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	LandingPage    string   `mapstructure:"landing_page"` // optional static page served at "/"
}

// CorpusConfig holds the catalog source location
type CorpusConfig struct {
	Path string `mapstructure:"path"`
}

// SearchLogConfig holds search log configuration
type SearchLogConfig struct {
	Path    string `mapstructure:"path"`
	Workers int    `mapstructure:"workers"` // 0 writes synchronously
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory" or "none"
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
	Burst int `mapstructure:"burst"`
}

// LogConfig holds diagnostic logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/menufinder/")

	// Environment variable settings: MENUFINDER_SEARCH_LOG_PATH -> search_log.path
	v.SetEnvPrefix("MENUFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory when present.
// Variables already set in the environment win.
func loadEnvFile() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.landing_page", "")

	// Corpus defaults
	v.SetDefault("corpus.path", "cleaned_dataset.csv")

	// Search log defaults
	v.SetDefault("search_log.path", "search_logs.json")
	v.SetDefault("search_log.workers", 4)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.burst", 20)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// validate validates the configuration
func validate(config *Config) error {
	if strings.TrimSpace(config.Corpus.Path) == "" {
		return fmt.Errorf("%w: corpus path is required (set MENUFINDER_CORPUS_PATH)", domain.ErrInvalidConfig)
	}
	if strings.TrimSpace(config.SearchLog.Path) == "" {
		return fmt.Errorf("%w: search log path is required (set MENUFINDER_SEARCH_LOG_PATH)", domain.ErrInvalidConfig)
	}
	if config.SearchLog.Workers < 0 {
		return fmt.Errorf("%w: search log workers must be >= 0, got: %d", domain.ErrInvalidConfig, config.SearchLog.Workers)
	}
	if config.Cache.Type != "memory" && config.Cache.Type != "none" {
		return fmt.Errorf("%w: cache type must be 'memory' or 'none', got: %s", domain.ErrInvalidConfig, config.Cache.Type)
	}
	if config.Cache.Type == "memory" && config.Cache.TTL <= 0 {
		return fmt.Errorf("%w: cache TTL must be positive, got: %s", domain.ErrInvalidConfig, config.Cache.TTL)
	}
	if config.RateLimit.PerIP < 0 || config.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: rate limits must be >= 0", domain.ErrInvalidConfig)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("%w: log format must be 'text' or 'json', got: %s", domain.ErrInvalidConfig, config.Log.Format)
	}
	return nil
}
