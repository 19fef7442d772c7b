// Package repl provides the interactive mode of respkv-cli.
//
//   - repl.go: read-eval-print loop and line splitting
//   - completer.go: command name completion used by help
//   - history.go: command history persistence
package repl
