// Package cmap provides a concurrent map implementation for respkv.
//
// The map is split into a power-of-two number of shards, each guarded by
// its own RWMutex, so writers on different keys rarely contend:
//
//   - Sharding: murmur3 hash of the key selects the shard
//   - Fine-grained Locking: per-shard RWMutex
//   - Conditional eviction: GetOrEvict reads a value and removes it in the
//     same critical section when the caller reports it stale
//
// Usage:
//
//	m := cmap.New[string, domain.Entry]()
//	m.Set("key", entry)
//	val, ok := m.Get("key")
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has) use RLock,
// write operations (Set, Delete, GetOrEvict on a stale entry) use Lock.
package cmap
