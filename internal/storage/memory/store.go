// Package memory provides in-memory storage for respkv.
package memory

import (
	"time"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/internal/telemetry/metric"
	"github.com/yndnr/respkv/pkg/cmap"
)

// Store holds string values with optional expiry.
//
// A Store is created once at startup and shared by every connection.
type Store struct {
	entries *cmap.Map[string, domain.Entry]

	now     func() time.Time
	expired metric.Counter
}

// Option configures the Store.
type Option func(*storeOptions)

type storeOptions struct {
	shardCount int
	now        func() time.Time
	expired    metric.Counter
}

// WithShardCount sets the number of map shards. Must be a power of 2.
func WithShardCount(n int) Option {
	return func(o *storeOptions) {
		o.shardCount = n
	}
}

// WithClock replaces the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) {
		o.now = now
	}
}

// WithExpiredCounter sets a counter incremented each time Get removes an
// expired entry.
func WithExpiredCounter(c metric.Counter) Option {
	return func(o *storeOptions) {
		o.expired = c
	}
}

// New creates a new in-memory store.
func New(opts ...Option) *Store {
	o := storeOptions{
		shardCount: cmap.DefaultShardCount,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		entries: cmap.NewWithShards[string, domain.Entry](o.shardCount),
		now:     o.now,
		expired: o.expired,
	}
}

// Set stores value under key with no expiry, replacing any existing entry
// together with its TTL.
func (s *Store) Set(key, value string) {
	s.entries.Set(key, domain.NewEntry(value))
}

// SetWithTTL stores value under key, expiring ttl from now.
// A zero ttl makes the entry expire on the first read after the current instant.
func (s *Store) SetWithTTL(key, value string, ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}
	s.entries.Set(key, domain.NewEntryWithTTL(value, s.now(), ttl))
}

// Get returns the live value stored under key.
//
// An entry whose expiry has passed is removed from the map and reported as
// absent. This is the only place expired entries are deleted.
func (s *Store) Get(key string) (string, bool) {
	now := s.now()
	entry, ok, evicted := s.entries.GetOrEvict(key, func(e domain.Entry) bool {
		return e.IsExpiredAt(now)
	})
	if evicted && s.expired != nil {
		s.expired.Inc()
	}
	if !ok {
		return "", false
	}
	return entry.Value, true
}

// Contains reports whether the map currently holds key, including entries
// that have expired but were not read since.
func (s *Store) Contains(key string) bool {
	return s.entries.Has(key)
}

// Len returns the number of entries held, expired-but-unread ones included.
func (s *Store) Len() int {
	return s.entries.Count()
}
