package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	AI      AIConfig      `mapstructure:"ai" yaml:"ai"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Check   CheckConfig   `mapstructure:"check" yaml:"check"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Backend    string      `mapstructure:"backend" yaml:"backend"` // "file" | "sqlite" | "redis" | "memory"
	Path       string      `mapstructure:"path" yaml:"path"`
	SQLitePath string      `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	Redis      RedisConfig `mapstructure:"redis" yaml:"redis"`
}

type RedisConfig struct {
	Addr           string        `mapstructure:"addr" yaml:"addr"`
	Username       string        `mapstructure:"username" yaml:"username"`
	Password       string        `mapstructure:"password" yaml:"password"`
	DB             int           `mapstructure:"db" yaml:"db"`
	Prefix         string        `mapstructure:"prefix" yaml:"prefix"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" yaml:"connect_timeout"` // total time to retry connecting
	RetryInterval  time.Duration `mapstructure:"retry_interval" yaml:"retry_interval"`   // grows exponentially
	MaxWait        time.Duration `mapstructure:"max_wait" yaml:"max_wait"`
	PingTimeout    time.Duration `mapstructure:"ping_timeout" yaml:"ping_timeout"`
}

// AIConfig configures metadata enrichment.
// The API key is read from the environment only and never written to disk.
type AIConfig struct {
	APIKey   string        `mapstructure:"api_key" yaml:"-"`
	Model    string        `mapstructure:"model" yaml:"model"`
	Endpoint string        `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Breaker  BreakerConfig `mapstructure:"breaker" yaml:"breaker"`
}

type BreakerConfig struct {
	MaxRequests      uint32        `mapstructure:"max_requests" yaml:"max_requests"` // allowed while half-open
	Interval         time.Duration `mapstructure:"interval" yaml:"interval"`
	Timeout          time.Duration `mapstructure:"timeout" yaml:"timeout"` // open -> half-open
	FailureThreshold float64       `mapstructure:"failure_threshold" yaml:"failure_threshold"`
	MinRequests      uint32        `mapstructure:"min_requests" yaml:"min_requests"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
	File   string `mapstructure:"file" yaml:"file"` // used by the TUI
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	// AllowedHosts restricts the Host header, with or without port, e.g.
	// "localhost" or "*.lan". Empty allows every host.
	AllowedHosts []string `mapstructure:"allowed_hosts" yaml:"allowed_hosts"`
}

// CheckConfig configures the dead link checker.
type CheckConfig struct {
	Concurrency    int           `mapstructure:"concurrency" yaml:"concurrency"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ExcludeDomains []string      `mapstructure:"exclude_domains" yaml:"exclude_domains"`
}

// DefaultDir returns the default config directory: ~/.config/nexus
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "nexus"), nil
}

// DefaultPath returns the default config file path: ~/.config/nexus/config.yaml
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the default configuration rooted at dir.
func Default(dir string) Config {
	return Config{
		Storage: StorageConfig{
			Backend:    "file",
			Path:       filepath.Join(dir, "store.json"),
			SQLitePath: filepath.Join(dir, "store.db"),
			Redis: RedisConfig{
				Addr:           "localhost:6379",
				Prefix:         "nexus:",
				ConnectTimeout: 10 * time.Second,
				RetryInterval:  500 * time.Millisecond,
				MaxWait:        4 * time.Second,
				PingTimeout:    2 * time.Second,
			},
		},
		AI: AIConfig{
			Model:    "claude-haiku-4-5-20251001",
			Endpoint: "https://api.anthropic.com/v1/messages",
			Timeout:  30 * time.Second,
			Breaker: BreakerConfig{
				MaxRequests:      1,
				Interval:         time.Minute,
				Timeout:          30 * time.Second,
				FailureThreshold: 0.5,
				MinRequests:      3,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
			File:   filepath.Join(dir, "nexus.log"),
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:7777",
			RequestTimeout:  45 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			AllowedHosts:    []string{"127.0.0.1", "localhost"},
		},
		Check: CheckConfig{
			Concurrency:    10,
			Timeout:        10 * time.Second,
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
	}
}

// Load reads config from the YAML file at path, applying defaults for
// missing values and NEXUS_* environment overrides (NEXUS_STORAGE_BACKEND,
// NEXUS_LOG_LEVEL, ...). The file is created with defaults if it doesn't exist.
func Load(path string) (*Config, error) {
	defaults := Default(filepath.Dir(path))

	v := viper.New()
	setDefaults(v, defaults)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("NEXUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ai.api_key", "NEXUS_AI_API_KEY", "ANTHROPIC_API_KEY"); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		// Non-fatal: defaults still apply if the file can't be written
		_ = Save(path, &defaults)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Storage.SQLitePath = expandHome(cfg.Storage.SQLitePath)
	cfg.Log.File = expandHome(cfg.Log.File)

	return &cfg, nil
}

// Save writes config to the YAML file.
// Creates the directory if it doesn't exist.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.sqlite_path", d.Storage.SQLitePath)
	v.SetDefault("storage.redis.addr", d.Storage.Redis.Addr)
	v.SetDefault("storage.redis.username", d.Storage.Redis.Username)
	v.SetDefault("storage.redis.password", d.Storage.Redis.Password)
	v.SetDefault("storage.redis.db", d.Storage.Redis.DB)
	v.SetDefault("storage.redis.prefix", d.Storage.Redis.Prefix)
	v.SetDefault("storage.redis.connect_timeout", d.Storage.Redis.ConnectTimeout)
	v.SetDefault("storage.redis.retry_interval", d.Storage.Redis.RetryInterval)
	v.SetDefault("storage.redis.max_wait", d.Storage.Redis.MaxWait)
	v.SetDefault("storage.redis.ping_timeout", d.Storage.Redis.PingTimeout)

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", d.AI.Model)
	v.SetDefault("ai.endpoint", d.AI.Endpoint)
	v.SetDefault("ai.timeout", d.AI.Timeout)
	v.SetDefault("ai.breaker.max_requests", d.AI.Breaker.MaxRequests)
	v.SetDefault("ai.breaker.interval", d.AI.Breaker.Interval)
	v.SetDefault("ai.breaker.timeout", d.AI.Breaker.Timeout)
	v.SetDefault("ai.breaker.failure_threshold", d.AI.Breaker.FailureThreshold)
	v.SetDefault("ai.breaker.min_requests", d.AI.Breaker.MinRequests)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.pretty", d.Log.Pretty)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.allowed_hosts", d.Server.AllowedHosts)

	v.SetDefault("check.concurrency", d.Check.Concurrency)
	v.SetDefault("check.timeout", d.Check.Timeout)
	v.SetDefault("check.exclude_domains", d.Check.ExcludeDomains)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
