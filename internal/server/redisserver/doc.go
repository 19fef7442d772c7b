// Package redisserver provides the RESP2 server for respkv.
//
// This package implements the RESP2 subset respkv speaks, using only the
// Go standard library for framing (no third-party RESP server):
//
//   - resp.go: request decoder (array frames and inline commands)
//   - reply.go: reply values and their encoding
//   - command.go: command dispatcher over the memory store
//   - server.go: listener, per-connection session loop, shutdown
//
// Supported commands:
//   - PING
//   - ECHO <message>
//   - SET <key> <value> [PX <milliseconds>]
//   - GET <key>
//
// Anything else, including a supported name with the wrong number of
// arguments, is answered with "-ERR unknown command".
package redisserver
