package config

import "time"

// CLIConfig is the configuration for respkv-cli.
type CLIConfig struct {
	// Server is the default server address.
	Server string `koanf:"server" yaml:"server"`
	// Output is the default output format: raw, json or yaml.
	Output string `koanf:"output" yaml:"output"`
	// Timeout bounds dialing and each command round trip.
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`
	// HistoryFile is where the interactive mode keeps its history.
	// Empty means ~/.respkv/history.
	HistoryFile string `koanf:"history_file" yaml:"history_file,omitempty"`

	// Servers maps saved names to addresses, usable with "use <name>".
	Servers map[string]string `koanf:"servers" yaml:"servers,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:  "127.0.0.1:6379",
		Output:  "raw",
		Timeout: 5 * time.Second,
		Servers: make(map[string]string),
	}
}

// Resolve returns the address saved under name, or name itself.
func (c *CLIConfig) Resolve(name string) string {
	if addr, ok := c.Servers[name]; ok {
		return addr
	}
	return name
}
