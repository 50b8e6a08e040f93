// go-aino
// Copyright (c) 2025 The go-aino Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-aino.
//
// go-aino is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-aino is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-aino; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Package config loads the service configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds application identity
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// CORSConfig controls the cross-origin headers of the API
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allowOrigins"`
}

// HTTPConfig configures the HTTP server
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	CORS            CORSConfig    `mapstructure:"cors"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// TerminalConfig configures the serial link to the EDC terminal
type TerminalConfig struct {
	Port            string        `mapstructure:"port"`
	PosID           string        `mapstructure:"posId"`
	BankTable       string        `mapstructure:"bankTable"`
	IgnorePaths     []string      `mapstructure:"ignorePaths"`
	Blocklist       []string      `mapstructure:"blocklist"`
	BaudRate        int           `mapstructure:"baudRate"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	ResponseTimeout time.Duration `mapstructure:"responseTimeout"`
	ReopenDelay     time.Duration `mapstructure:"reopenDelay"`
	ConnectOnStart  bool          `mapstructure:"connectOnStart"`
}

// LumberjackConfig configures log file rotation
type LumberjackConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// LoggingConfig configures level and outputs
type LoggingConfig struct {
	Level  string           `mapstructure:"level"`
	Format string           `mapstructure:"format"`
	File   LumberjackConfig `mapstructure:"file"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	Enable bool   `mapstructure:"enable"`
	Path   string `mapstructure:"path"`
}

// RedisConfig configures the optional last-result store
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	KeyPrefix    string        `mapstructure:"keyPrefix"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"poolSize"`
	MinIdleConns int           `mapstructure:"minIdleConns"`
	DialTimeout  time.Duration `mapstructure:"dialTimeout"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	TTL          time.Duration `mapstructure:"ttl"`
	Enabled      bool          `mapstructure:"enabled"`
}

// RateLimitConfig throttles the transaction routes
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requestsPerSecond"`
	Burst             int     `mapstructure:"burst"`
	Enabled           bool    `mapstructure:"enabled"`
}

// Config is the top-level configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Terminal  TerminalConfig  `mapstructure:"terminal"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// EnvPrefix prefixes environment overrides, e.g. AINO_TERMINAL_PORT.
const EnvPrefix = "AINO"

// Load reads configuration from a YAML/TOML/JSON file and the environment.
// With an empty path it tries AINO_CONFIG, then configs/example.yaml. A missing
// file is not an error; defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetConfigName("example")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch {
	case c.Terminal.Port == "":
		return errors.New("config: terminal.port is required")
	case c.Terminal.BaudRate <= 0:
		return fmt.Errorf("config: terminal.baudRate must be positive, got %d", c.Terminal.BaudRate)
	case c.Terminal.ReadTimeout <= 0:
		return fmt.Errorf("config: terminal.readTimeout must be positive, got %v", c.Terminal.ReadTimeout)
	case c.Terminal.ResponseTimeout < 0:
		return fmt.Errorf("config: terminal.responseTimeout must not be negative, got %v", c.Terminal.ResponseTimeout)
	case c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0:
		return errors.New("config: rateLimit.requestsPerSecond must be positive when enabled")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "ainod")
	v.SetDefault("app.env", "dev")

	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.readTimeout", "10s")
	v.SetDefault("http.writeTimeout", "120s")
	v.SetDefault("http.shutdownTimeout", "10s")
	v.SetDefault("http.cors.allowOrigins", []string{"*"})

	v.SetDefault("terminal.port", "COM3")
	v.SetDefault("terminal.baudRate", 115200)
	v.SetDefault("terminal.posId", "2")
	v.SetDefault("terminal.readTimeout", "3s")
	v.SetDefault("terminal.responseTimeout", "90s")
	v.SetDefault("terminal.reopenDelay", "1s")
	v.SetDefault("terminal.connectOnStart", true)
	v.SetDefault("terminal.bankTable", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file.filename", "logs/ainod.log")
	v.SetDefault("logging.file.maxSize", 50)
	v.SetDefault("logging.file.maxBackups", 7)
	v.SetDefault("logging.file.maxAge", 30)
	v.SetDefault("logging.file.compress", true)

	v.SetDefault("metrics.enable", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.poolSize", 4)
	v.SetDefault("redis.minIdleConns", 1)
	v.SetDefault("redis.dialTimeout", "5s")
	v.SetDefault("redis.readTimeout", "3s")
	v.SetDefault("redis.writeTimeout", "3s")
	v.SetDefault("redis.keyPrefix", "aino")
	v.SetDefault("redis.ttl", "0s")

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerSecond", 2)
	v.SetDefault("rateLimit.burst", 4)
}
