package command

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// startServer runs a real RESP server on a loopback port and returns its address.
func startServer(t *testing.T) string {
	t.Helper()

	cfg := redisserver.DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	srv := redisserver.New(cfg, redisserver.NewCommandHandler(memory.New(), nil), nil, logger.Nop())
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv.Addr().String()
}

// appResult captures one CLI invocation.
type appResult struct {
	stdout string
	stderr string
	err    error
}

// runApp runs the CLI with an isolated config file and the given stdin.
func runApp(t *testing.T, configPath, stdin string, args ...string) appResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := App()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.Reader = strings.NewReader(stdin)
	app.ExitErrHandler = func(*cli.Context, error) {}

	full := append([]string{"respkv-cli", "--config", configPath}, args...)
	err := app.Run(full)
	return appResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// tempConfig returns a config path inside a fresh temp dir and points the
// history file there too.
func tempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("RESPKV_CLI_HISTORY_FILE", filepath.Join(dir, "history"))
	return filepath.Join(dir, "cli.yaml")
}
