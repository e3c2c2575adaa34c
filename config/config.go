// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/envgov/feedback-api/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds HTTP listener configuration.
type ServerConfig struct {
	Environment            Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Host                   string      `mapstructure:"HOST" yaml:"host"`
	Port                   string      `mapstructure:"PORT" yaml:"port"`
	Debug                  bool        `mapstructure:"DEBUG" yaml:"debug"`
	AllowedOrigins         []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version                string      `mapstructure:"VERSION" yaml:"version"`
	ShutdownTimeoutSeconds int         `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" yaml:"shutdown_timeout_seconds"`
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Neo4jConfig holds graph store connection details.
type Neo4jConfig struct {
	URI                                 string `mapstructure:"URI" yaml:"uri"`
	Username                            string `mapstructure:"USERNAME" yaml:"username"`
	Password                            string `mapstructure:"PASSWORD" yaml:"password"`
	Database                            string `mapstructure:"DATABASE" yaml:"database"`
	MaxConnectionPoolSize               int    `mapstructure:"MAX_CONNECTION_POOL_SIZE" yaml:"max_connection_pool_size"`
	ConnectionAcquisitionTimeoutSeconds int    `mapstructure:"CONNECTION_ACQUISITION_TIMEOUT_SECONDS" yaml:"connection_acquisition_timeout_seconds"`
}

// RedisConfig holds Redis connection details. Redis is only used by the
// ingestion rate limiter.
type RedisConfig struct {
	Address  string `mapstructure:"ADDRESS" yaml:"address"`
	Password string `mapstructure:"PASSWORD" yaml:"password"`
	DB       int    `mapstructure:"DB" yaml:"db"`
	UseTLS   bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
}

// RateLimitConfig holds configuration for POST /api/feedback rate limiting.
type RateLimitConfig struct {
	Enabled                   bool `mapstructure:"ENABLED" yaml:"enabled"`
	FeedbackRequestsPerMinute int  `mapstructure:"FEEDBACK_REQUESTS_PER_MINUTE" yaml:"feedback_requests_per_minute"`
	WindowSeconds             int  `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER" yaml:"server"`
	Neo4j     Neo4jConfig     `mapstructure:"NEO4J" yaml:"neo4j"`
	Redis     RedisConfig     `mapstructure:"REDIS" yaml:"redis"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// applies defaults, and validates the result.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.HOST", "0.0.0.0")
	v.SetDefault("SERVER.PORT", "8000")
	v.SetDefault("SERVER.DEBUG", false)
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("SERVER.SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("NEO4J.URI", "bolt://localhost:7687")
	v.SetDefault("NEO4J.USERNAME", "neo4j")
	v.SetDefault("NEO4J.PASSWORD", "")
	v.SetDefault("NEO4J.DATABASE", "neo4j")
	v.SetDefault("NEO4J.MAX_CONNECTION_POOL_SIZE", 50)
	v.SetDefault("NEO4J.CONNECTION_ACQUISITION_TIMEOUT_SECONDS", 60)
	v.SetDefault("REDIS.ADDRESS", "")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("RATE_LIMIT.ENABLED", false)
	v.SetDefault("RATE_LIMIT.FEEDBACK_REQUESTS_PER_MINUTE", 60)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.HOST", "HOST"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.DEBUG", "DEBUG"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		{"SERVER.SHUTDOWN_TIMEOUT_SECONDS", "SHUTDOWN_TIMEOUT_SECONDS"},
		// Graph store
		{"NEO4J.URI", "NEO4J_URI"},
		{"NEO4J.USERNAME", "NEO4J_USERNAME"},
		{"NEO4J.PASSWORD", "NEO4J_PASSWORD"},
		{"NEO4J.DATABASE", "NEO4J_DATABASE"},
		{"NEO4J.MAX_CONNECTION_POOL_SIZE", "NEO4J_MAX_CONNECTION_POOL_SIZE"},
		{"NEO4J.CONNECTION_ACQUISITION_TIMEOUT_SECONDS", "NEO4J_CONNECTION_ACQUISITION_TIMEOUT_SECONDS"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		// Rate limit config
		{"RATE_LIMIT.ENABLED", "RATE_LIMIT_ENABLED"},
		{"RATE_LIMIT.FEEDBACK_REQUESTS_PER_MINUTE", "RATE_LIMIT_FEEDBACK_REQUESTS_PER_MINUTE"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}
	// ALLOWED_ORIGINS arrives as one comma separated string from the environment
	cfg.Server.AllowedOrigins = splitOrigins(cfg.Server.AllowedOrigins)

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"listen_addr", cfg.Server.Addr(),
		"neo4j_uri", logger.MaskConnectionString(cfg.Neo4j.URI),
		"neo4j_database", cfg.Neo4j.Database,
		"rate_limit_enabled", cfg.RateLimit.Enabled,
	)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		return fmt.Errorf("server port must be numeric, got %q", cfg.Server.Port)
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}
	if cfg.Server.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	if err := validateNeo4jConfig(&cfg.Neo4j); err != nil {
		return err
	}

	if cfg.RateLimit.Enabled {
		if cfg.Redis.Address == "" {
			return fmt.Errorf("redis address is required when rate limiting is enabled")
		}
		if cfg.RateLimit.FeedbackRequestsPerMinute <= 0 {
			return fmt.Errorf("rate limit feedback requests per minute must be positive")
		}
		if cfg.RateLimit.WindowSeconds <= 0 {
			return fmt.Errorf("rate limit window seconds must be positive")
		}
	}

	return nil
}

func validateNeo4jConfig(cfg *Neo4jConfig) error {
	if cfg.Password == "" {
		return fmt.Errorf("NEO4J_PASSWORD is required")
	}
	if cfg.URI == "" {
		return fmt.Errorf("neo4j URI is required")
	}
	u, err := url.Parse(cfg.URI)
	if err != nil {
		return fmt.Errorf("invalid neo4j URI: %w", err)
	}
	switch u.Scheme {
	case "bolt", "bolt+s", "bolt+ssc", "neo4j", "neo4j+s", "neo4j+ssc":
	default:
		return fmt.Errorf("unsupported neo4j URI scheme %q", u.Scheme)
	}
	if cfg.Database == "" {
		return fmt.Errorf("neo4j database name is required")
	}
	if cfg.MaxConnectionPoolSize <= 0 {
		return fmt.Errorf("neo4j max connection pool size must be positive")
	}
	return nil
}

func splitOrigins(origins []string) []string {
	var out []string
	for _, o := range origins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
