// Package main provides the entry point for respkv-cli.
//
// respkv-cli is a RESP client for respkv-server. It runs one command per
// invocation, or an interactive session when no command is given.
//
// Usage:
//
//	respkv-cli ping
//	respkv-cli set --px 5000 session:42 token
//	respkv-cli -s 10.0.0.5:6379 get session:42
//	respkv-cli
package main
