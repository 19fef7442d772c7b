package benchmark

import (
	"context"
	"testing"
	"time"

	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// startServer runs a loopback server for the duration of the benchmark.
func startServer(b *testing.B) string {
	b.Helper()

	cfg := redisserver.DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	srv := redisserver.New(cfg, redisserver.NewCommandHandler(memory.New(), nil), nil, logger.Nop())
	if err := srv.Start(context.Background()); err != nil {
		b.Fatalf("start server: %v", err)
	}
	b.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv.Addr().String()
}

// BenchmarkServerRoundTrip benchmarks request/reply latency over TCP.
func BenchmarkServerRoundTrip(b *testing.B) {
	addr := startServer(b)

	client, err := connection.Dial(addr, time.Second)
	if err != nil {
		b.Fatalf("dial: %v", err)
	}
	defer client.Close()

	if _, err := client.Do("SET", "bench", newValue(64)); err != nil {
		b.Fatalf("SET: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := client.Do("GET", "bench"); err != nil {
			b.Fatalf("GET: %v", err)
		}
	}
}

// BenchmarkServerParallel benchmarks many clients each on its own connection.
func BenchmarkServerParallel(b *testing.B) {
	addr := startServer(b)

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		client, err := connection.Dial(addr, time.Second)
		if err != nil {
			b.Errorf("dial: %v", err)
			return
		}
		defer client.Close()

		key := newKey()
		for pb.Next() {
			if _, err := client.Do("SET", key, "v"); err != nil {
				b.Errorf("SET: %v", err)
				return
			}
		}
	})
}
