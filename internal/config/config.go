// Package config loads relay server settings from a YAML file with
// environment overrides (prefix THIRTEEN_).
package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config is the relay server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig covers the HTTP/WebSocket listener.
type ServerConfig struct {
	Host           string   `yaml:"host" envconfig:"HOST"`
	Port           int      `yaml:"port" envconfig:"PORT"`
	AllowedOrigins []string `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	IdleLobbyMin   int      `yaml:"idle_lobby_minutes" envconfig:"IDLE_LOBBY_MINUTES"`
}

// RedisConfig covers the win-tally store.
type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
}

// LogConfig selects log output shape.
type LogConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`
	JSON  bool   `yaml:"json" envconfig:"LOG_JSON"`
}

// IdleLobbyTimeout returns how long an empty lobby may linger.
func (c *ServerConfig) IdleLobbyTimeout() time.Duration {
	return time.Duration(c.IdleLobbyMin) * time.Minute
}

// Load reads the YAML file at path, then applies environment overrides
// and defaults. A missing file is an error; callers fall back to
// Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := envconfig.Process("thirteen", &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	_ = envconfig.Process("thirteen", cfg)
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if c.Server.IdleLobbyMin == 0 {
		c.Server.IdleLobbyMin = 10
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
