// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Package config loads application configuration using koanf v2 with
// layered sources: built-in defaults, an optional YAML file, then
// environment variables. Precedence is ENV > file > defaults.
//
// Environment variables use the PLACEPULSE_ prefix with underscores for
// nesting: PLACEPULSE_SERVER_LISTEN_ADDR maps to server.listen_addr.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/avela/placepulse/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/placepulse/config.yaml",
	"/etc/placepulse/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "PLACEPULSE_CONFIG_PATH"

// envPrefix is stripped from environment variables before mapping them
// to koanf paths.
const envPrefix = "PLACEPULSE_"

// Config is the root application configuration.
type Config struct {
	Logging  LoggingConfig  `koanf:"logging"`
	Server   ServerConfig   `koanf:"server"`
	Store    StoreConfig    `koanf:"store"`
	Activity ActivityConfig `koanf:"activity"`
	Profiles ProfilesConfig `koanf:"profiles"`

	// Recommend configures the scoring engine. Weights default to the
	// engine's own DefaultConfig.
	Recommend *recommend.Config `koanf:"recommend"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is the minimum log level.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line in logs.
	Caller bool `koanf:"caller"`
}

// ServerConfig controls the operational HTTP server.
type ServerConfig struct {
	// ListenAddr is the address for health and metrics endpoints.
	ListenAddr string `koanf:"listen_addr"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StoreConfig selects the profile registry backend.
type StoreConfig struct {
	// Backend is "memory" or "badger".
	Backend string `koanf:"backend"`

	// Path is the Badger database directory. Ignored for memory.
	Path string `koanf:"path"`
}

// ActivityConfig locates the activity data source.
type ActivityConfig struct {
	// SnapshotPath is a JSON activity export to serve profiles from.
	// Empty disables the snapshot provider; profiles must then be built
	// by the embedding application.
	SnapshotPath string `koanf:"snapshot_path"`
}

// ProfilesConfig controls profile freshness and the background refresh
// sweep.
type ProfilesConfig struct {
	// TTL is the age past which a profile is rebuilt.
	TTL time.Duration `koanf:"ttl"`

	// RefreshInterval is how often the sweep runs.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// RefreshOnStartup runs one sweep immediately at startup.
	RefreshOnStartup bool `koanf:"refresh_on_startup"`

	// RebuildsPerSecond bounds the rebuild rate during a sweep.
	RebuildsPerSecond float64 `koanf:"rebuilds_per_second"`

	// RebuildBurst is the rate limiter burst size.
	RebuildBurst int `koanf:"rebuild_burst"`
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Server: ServerConfig{
			ListenAddr:      "0.0.0.0:9180",
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Backend: "memory",
			Path:    "/data/placepulse/profiles",
		},
		Activity: ActivityConfig{
			SnapshotPath: "",
		},
		Profiles: ProfilesConfig{
			TTL:               6 * time.Hour,
			RefreshInterval:   30 * time.Minute,
			RefreshOnStartup:  true,
			RebuildsPerSecond: 10,
			RebuildBurst:      5,
		},
		Recommend: recommend.DefaultConfig(),
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and PLACEPULSE_-prefixed environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration invalid: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory":
	case "badger":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the badger backend")
		}
	default:
		return fmt.Errorf("store.backend must be memory or badger, got %q", c.Store.Backend)
	}

	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}

	if c.Profiles.TTL <= 0 {
		return fmt.Errorf("profiles.ttl must be positive, got %s", c.Profiles.TTL)
	}
	if c.Profiles.RefreshInterval <= 0 {
		return fmt.Errorf("profiles.refresh_interval must be positive, got %s", c.Profiles.RefreshInterval)
	}
	if c.Profiles.RebuildsPerSecond <= 0 {
		return fmt.Errorf("profiles.rebuilds_per_second must be positive, got %f", c.Profiles.RebuildsPerSecond)
	}

	if c.Recommend != nil {
		if err := c.Recommend.Validate(); err != nil {
			return fmt.Errorf("recommend: %w", err)
		}
	}

	return nil
}

// findConfigFile returns the first config file that exists, honoring the
// PLACEPULSE_CONFIG_PATH override.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		return ""
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform maps PLACEPULSE_SECTION_SOME_KEY to section.some_key.
// Only the first underscore separates the section from the key, so
// multi-word keys survive intact.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(s, "_", 2)
	if len(parts) != 2 {
		return s
	}
	return parts[0] + "." + parts[1]
}
