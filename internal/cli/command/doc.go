// Package command provides the respkv-cli command definitions.
//
// It uses urfave/cli/v2 for parsing and supports both single-command mode
// and interactive mode:
//
//   - root.go: App, global flags, shared setup and teardown
//   - kv.go: ping, echo, set, get and raw
//   - config.go: local configuration commands
//   - interactive.go: REPL mode when no subcommand is given
package command
