package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		HTTPAddr:   "127.0.0.1:0",
		DBPath:     filepath.Join(t.TempDir(), "titan.db"),
		SessionKey: strings.Repeat("k", 32),
		SeedDemo:   true,
	}
}

func TestNewServerValidatesConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing address", mutate: func(cfg *Config) { cfg.HTTPAddr = " " }},
		{name: "missing db path", mutate: func(cfg *Config) { cfg.DBPath = "" }},
		{name: "short session key", mutate: func(cfg *Config) { cfg.SessionKey = "short" }},
		{name: "missing theme file", mutate: func(cfg *Config) { cfg.ThemePath = "/nonexistent/titan-theme.toml" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig(t)
			tc.mutate(&cfg)
			if server, err := NewServer(context.Background(), cfg); err == nil {
				server.Close()
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewServerServesSeededRoster(t *testing.T) {
	t.Parallel()

	server, err := NewServer(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	defer server.Close()

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/up", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `action="/login"`) {
		t.Fatalf("login = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	server, err := NewServer(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.ListenAndServe(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNilServer(t *testing.T) {
	t.Parallel()

	var server *Server
	if err := server.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	server.Close()
	if server.Handler() != nil {
		t.Fatal("expected nil handler")
	}
}
