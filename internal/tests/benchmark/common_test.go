package benchmark

import (
	"fmt"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/respkv/internal/storage/memory"
)

// KeyCounts defines the store sizes for benchmarking.
var KeyCounts = []int{5000, 10000, 50000, 100000, 500000}

// SmallKeyCounts for quick benchmarks.
var SmallKeyCounts = []int{1000, 10000, 100000}

// ValueSizes are payload sizes in bytes.
var ValueSizes = []int{16, 256, 4096}

// newKey generates a unique key.
func newKey() string {
	return "key:" + strings.ToLower(ulid.Make().String())
}

// newValue returns a value of n bytes.
func newValue(n int) string {
	return strings.Repeat("v", n)
}

// prefillStore prefills a store with count keys and returns them.
func prefillStore(store *memory.Store, count int) []string {
	keys := make([]string, count)
	value := newValue(64)
	for i := range keys {
		keys[i] = newKey()
		store.Set(keys[i], value)
	}
	return keys
}

// prefillExpired fills a store with count keys that have already expired
// relative to the returned clock.
func prefillExpired(count int) (*memory.Store, []string) {
	now := time.Unix(1700000000, 0)
	clock := &now
	store := memory.New(memory.WithClock(func() time.Time { return *clock }))

	keys := make([]string, count)
	for i := range keys {
		keys[i] = newKey()
		store.SetWithTTL(keys[i], "v", time.Millisecond)
	}
	*clock = now.Add(time.Second)
	return store, keys
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithKeyCounts runs a benchmark function with various store sizes.
func runWithKeyCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("keys_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
