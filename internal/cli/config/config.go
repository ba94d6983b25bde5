package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix namespaces environment overrides, e.g. CHARTDATA_CACHE_BACKEND
const EnvPrefix = "CHARTDATA"

// Cache backends
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config represents the chartdata configuration
type Config struct {
	Timezone string         `mapstructure:"timezone"`
	Log      LogConfig      `mapstructure:"log"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Database DatabaseConfig `mapstructure:"database"`
}

// LogConfig represents logger configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// CacheConfig represents the rendered-table cache configuration
type CacheConfig struct {
	Backend  string        `mapstructure:"backend"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

// DatabaseConfig represents the SQL source configuration
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URL    string `mapstructure:"url"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("cache.backend", CacheNone)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.prefix", "chartdata:")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.url", "")
}

// Load loads the configuration from path, or from chartdata.yml / chartdata.yaml
// in the working directory when path is empty. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("chartdata")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DatabaseURL returns the database URL from DATABASE_URL or the config
func DatabaseURL(cfg *Config) string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	if cfg == nil {
		return ""
	}
	return cfg.Database.URL
}

// validateConfig validates the configuration. The timezone is not checked
// here: an unknown zone is ignored when it is applied.
func validateConfig(cfg *Config) error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got: %s", cfg.Log.Level)
	}

	switch cfg.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if cfg.Cache.Addr == "" {
			return fmt.Errorf("cache.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend must be one of none, memory, redis, got: %s", cfg.Cache.Backend)
	}

	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got: %s", cfg.Cache.TTL)
	}

	switch cfg.Database.Driver {
	case "sqlite3", "pgx":
	default:
		return fmt.Errorf("database.driver must be sqlite3 or pgx, got: %s", cfg.Database.Driver)
	}

	return nil
}
