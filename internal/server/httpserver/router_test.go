package httpserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

type fixedKeys int

func (f fixedKeys) Len() int { return int(f) }

type fixedConns int

func (f fixedConns) ConnCount() int { return int(f) }

func TestNewRouter(t *testing.T) {
	reg := metric.NewRegistry()
	reg.CommandsTotal.WithLabelValues("PING").Inc()

	router := NewRouter(&RouterConfig{
		Metrics: reg,
		Keys:    fixedKeys(3),
		Conns:   fixedConns(2),
		Logger:  logger.Nop(),
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"health", http.MethodGet, "/health", http.StatusOK, `"status":"healthy"`},
		{"ready", http.MethodGet, "/ready", http.StatusOK, `"status":"ready"`},
		{"status", http.MethodGet, "/status", http.StatusOK, `"keys":3`},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK, `respkv_commands_total{command="PING"} 1`},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound, ""},
		{"wrong method", http.MethodPost, "/health", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
			if tt.wantStatus == http.StatusOK && rec.Header().Get("X-Request-ID") == "" {
				t.Error("X-Request-ID header should be set")
			}
		})
	}
}

func TestNewRouter_WithoutMetrics(t *testing.T) {
	router := NewRouter(&RouterConfig{Logger: logger.Nop()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestNewRouter_NotReady(t *testing.T) {
	router := NewRouter(&RouterConfig{
		Ready:  func() error { return errors.New("redis listener not started") },
		Logger: logger.Nop(),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "redis listener not started") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
