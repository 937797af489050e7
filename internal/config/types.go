package config

import "time"

// Config represents the main configuration structure
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Models   ModelsConfig   `yaml:"models" mapstructure:"models"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	RateLimit    struct {
		Enabled        bool `yaml:"enabled" mapstructure:"enabled"`
		RequestsPerMin int  `yaml:"requests_per_min" mapstructure:"requests_per_min"`
		Burst          int  `yaml:"burst" mapstructure:"burst"`
	} `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// ModelsConfig locates the embedding model files on disk.
type ModelsConfig struct {
	// Dir is the root directory of downloaded vector tables, laid out as
	// fasttext/<lang>.vec and nlpl/<lang>/model.txt.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// DefaultVariant is the backend variant the factory substitutes
	// wherever one is left unset. Must be "fasttext" or "nlpl".
	DefaultVariant string `yaml:"default_variant" mapstructure:"default_variant"`
}

// CacheConfig contains the Redis lookup-cache configuration.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	URL     string        `yaml:"url" mapstructure:"url"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// DatabaseConfig contains the word-vector store configuration.
type DatabaseConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	URL             string        `yaml:"url" mapstructure:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
	File   struct {
		Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
		Path    string `yaml:"path" mapstructure:"path"`
	} `yaml:"file" mapstructure:"file"`
}

// GetDefaults returns a configuration with sensible defaults
func GetDefaults() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Models: ModelsConfig{
			Dir:            "./models",
			DefaultVariant: "fasttext",
		},
		Cache: CacheConfig{
			Enabled: false,
			URL:     "redis://localhost:6379/0",
			TTL:     6 * time.Hour,
		},
		Database: DatabaseConfig{
			Enabled:         false,
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
	cfg.Server.RateLimit.Enabled = true
	cfg.Server.RateLimit.RequestsPerMin = 120
	cfg.Server.RateLimit.Burst = 20
	return cfg
}
