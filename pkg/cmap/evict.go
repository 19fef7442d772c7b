// Package cmap provides a concurrent-safe sharded map.
package cmap

// GetOrEvict returns the value stored for key unless stale reports it
// unusable, in which case the entry is removed and (zero, false) is returned.
//
// The common path only takes the shard read lock. When a stale value is seen
// the write lock is taken and staleness is re-evaluated against the current
// value, so an entry replaced concurrently by Set is never evicted.
//
// evicted reports whether this call removed the entry.
func (m *Map[K, V]) GetOrEvict(key K, stale func(V) bool) (value V, ok bool, evicted bool) {
	shard := m.getShard(key)

	shard.mu.RLock()
	val, exists := shard.items[key]
	if !exists {
		shard.mu.RUnlock()
		return value, false, false
	}
	if !stale(val) {
		shard.mu.RUnlock()
		return val, true, false
	}
	shard.mu.RUnlock()

	shard.mu.Lock()
	defer shard.mu.Unlock()

	val, exists = shard.items[key]
	if !exists {
		return value, false, false
	}
	if !stale(val) {
		return val, true, false
	}
	delete(shard.items, key)
	return value, false, true
}

// Range iterates over all key-value pairs.
//
// The callback returns false to stop iteration.
// Note: This acquires locks shard by shard, so the view may not be consistent.
// The callback must not call back into the map.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, shard := range m.shards {
		shard.mu.RLock()
		for k, v := range shard.items {
			if !fn(k, v) {
				shard.mu.RUnlock()
				return
			}
		}
		shard.mu.RUnlock()
	}
}
