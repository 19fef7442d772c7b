// Package memory provides the in-memory key-value store for respkv.
//
// Values are kept in a sharded concurrent map keyed by string. Each entry
// may carry an absolute expiry; expiry is enforced lazily, on read only:
//
//   - Get treats an expired entry as absent and removes it from the map
//   - No background goroutine ever scans the map
//   - An expired entry that is never read again stays resident
//
// Thread Safety:
//
// Every operation is a single critical section on one shard lock. Get's
// check-then-delete is performed atomically, so a concurrent Set on the
// same key is never lost.
package memory
