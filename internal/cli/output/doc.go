// Package output renders server replies for respkv-cli.
//
//   - formatter.go: Formatter interface and factory
//   - raw.go: redis-cli style text
//   - json.go: JSON output for scripting
//   - yaml.go: YAML output
package output
