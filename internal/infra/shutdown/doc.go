// Package shutdown provides graceful shutdown for respkv.
//
// This package handles process termination:
//
//   - Signal handling (SIGINT, SIGTERM) and programmatic Trigger
//   - A single timeout shared by all cleanup hooks
//   - Named cleanup hooks run in reverse registration order
//
// Usage:
//
//	h := shutdown.NewHandler(10*time.Second, log)
//	h.OnShutdown("redis", srv.Shutdown)
//	err := h.Wait()
package shutdown
