// Package config provides respkv-cli configuration.
//
//   - spec.go: CLIConfig struct (~/.respkv/cli.yaml)
//   - loader.go: loading from file and RESPKV_CLI_* environment, saving
package config
