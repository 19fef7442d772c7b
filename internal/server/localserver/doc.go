// Package localserver exposes the RESP server on a Unix domain socket.
//
// Local clients reach the same command handler and store as TCP clients.
// The socket file is created with owner-only permissions and a stale file
// left by a previous process is replaced.
package localserver
