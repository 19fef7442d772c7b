// Package connection provides the RESP client used by respkv-cli.
//
//   - client.go: a single TCP connection that sends commands as RESP arrays
//     and reads one reply per command
//   - manager.go: lazy dialing and reuse of the current client
package connection
