// Package config loads service configuration from file, PLACEHOLDER_*
// environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sternrassler/placeholder-proxy/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides (PLACEHOLDER_SERVER_PORT, ...).
const EnvPrefix = "PLACEHOLDER"

// Config is the complete service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
	Warmup   WarmupConfig   `mapstructure:"warmup"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// UpstreamConfig configures the JSONPlaceholder client.
type UpstreamConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	UserAgent      string        `mapstructure:"user_agent"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelay     time.Duration `mapstructure:"retry_delay"`
	CircuitBreaker bool          `mapstructure:"circuit_breaker"`
}

// CacheConfig selects and configures the cache store.
type CacheConfig struct {
	Backend   string        `mapstructure:"backend"`
	TTL       time.Duration `mapstructure:"ttl"`
	RedisAddr string        `mapstructure:"redis_addr"`
	RedisDB   int           `mapstructure:"redis_db"`
}

// LogConfig configures zerolog.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// WarmupConfig configures background cache warm-up. An empty schedule
// disables it.
type WarmupConfig struct {
	Schedule    string        `mapstructure:"schedule"`
	Concurrency int           `mapstructure:"concurrency"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Cache backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("upstream.base_url", "https://jsonplaceholder.typicode.com")
	v.SetDefault("upstream.user_agent", "placeholder-proxy/0.1.0")
	v.SetDefault("upstream.timeout", 10*time.Second)
	v.SetDefault("upstream.max_retries", 3)
	v.SetDefault("upstream.retry_delay", time.Second)
	v.SetDefault("upstream.circuit_breaker", false)

	v.SetDefault("cache.backend", BackendMemory)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("warmup.schedule", "@every 30m")
	v.SetDefault("warmup.concurrency", 4)
	v.SetDefault("warmup.timeout", 30*time.Second)
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// BindFlags registers the serve flags on cmd and binds them to v.
func BindFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.Flags()
	flags.Int("port", 8080, "Port to run the server on")
	flags.String("upstream", "https://jsonplaceholder.typicode.com", "Upstream base URL")
	flags.String("cache-backend", BackendMemory, "Cache backend (memory, redis)")
	flags.String("redis-addr", "localhost:6379", "Redis address for the redis cache backend")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.Bool("log-pretty", false, "Human-readable console logs")
	flags.String("warmup-schedule", "@every 30m", "Cron schedule of cache warm-up (empty disables)")

	bindings := map[string]string{
		"server.port":       "port",
		"upstream.base_url": "upstream",
		"cache.backend":     "cache-backend",
		"cache.redis_addr":  "redis-addr",
		"log.level":         "log-level",
		"log.pretty":        "log-pretty",
		"warmup.schedule":   "warmup-schedule",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads cfgFile (or ./config.* when empty) into a validated Config.
// A missing default config file is not an error.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Upstream.BaseURL == "" {
		return errors.New("upstream.base_url is required")
	}
	if c.Upstream.MaxRetries < 0 {
		return fmt.Errorf("upstream.max_retries must be >= 0 (got %d)", c.Upstream.MaxRetries)
	}
	if c.Upstream.RetryDelay < 0 {
		return fmt.Errorf("upstream.retry_delay must be >= 0 (got %s)", c.Upstream.RetryDelay)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 (got %s)", c.Cache.TTL)
	}
	switch c.Cache.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("cache.backend must be %q or %q (got %q)", BackendMemory, BackendRedis, c.Cache.Backend)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Warmup.Concurrency < 1 {
		return fmt.Errorf("warmup.concurrency must be >= 1 (got %d)", c.Warmup.Concurrency)
	}
	return nil
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
