// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for respkv-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Store  StoreSection  `koanf:"store"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	Redis RedisConfig `koanf:"redis"`
	HTTP  HTTPConfig  `koanf:"http"`
	Local LocalConfig `koanf:"local"`
}

// RedisConfig configures the RESP protocol server.
type RedisConfig struct {
	Addr string `koanf:"addr"`

	// Timeouts; 0 disables each of them.
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	// RateLimit is commands per second per connection. 0 disables it.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	// MaxConnections caps open client connections. 0 means unlimited.
	MaxConnections int `koanf:"max_connections"`
}

// HTTPConfig configures the admin HTTP server (metrics and health).
type HTTPConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LocalConfig configures the Unix socket listener.
type LocalConfig struct {
	// Socket is the socket path. Empty disables the listener.
	Socket string `koanf:"socket"`
}

// StoreSection configures the in-memory store.
type StoreSection struct {
	// ShardCount must be a power of 2. 0 selects the default.
	ShardCount int `koanf:"shard_count"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string      `koanf:"level"`
	Format string      `koanf:"format"`
	File   FileSection `koanf:"file"`
}

// FileSection configures the optional rotating log file.
type FileSection struct {
	Path       string `koanf:"path"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}
