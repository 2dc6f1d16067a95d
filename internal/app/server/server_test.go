package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"perftrack/internal/platform/config"
	"perftrack/internal/testutil"
)

func newTestApp(t *testing.T, mutate func(*config.Config)) *App {
	t.Helper()
	cfg := testutil.SQLiteConfig(t)
	if err := os.WriteFile(filepath.Join(cfg.FrontendDir, "index.html"), []byte("<html>perftrack</html>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	if mutate != nil {
		mutate(&cfg)
	}
	app, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testutil.SQLiteConfig(t)
	cfg.DatabaseURL = ""
	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected config error")
	}
}

func TestHealthAndReadiness(t *testing.T) {
	app := newTestApp(t, nil)

	if rec := get(t, app.Router, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz %d %q", rec.Code, rec.Body.String())
	}
	if rec := get(t, app.Router, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("unexpected readyz %d", rec.Code)
	}

	_ = app.DB.Close()
	if rec := get(t, app.Router, "/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 after close, got %d", rec.Code)
	}
}

func TestRouterServesAPIWithSecurityHeaders(t *testing.T) {
	app := newTestApp(t, nil)
	rec := get(t, app.Router, "/api/v1/employees")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" || rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatalf("missing middleware headers: %v", rec.Header())
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty employee list, got %s", rec.Body.String())
	}
}

func TestMetricsReflectTraffic(t *testing.T) {
	app := newTestApp(t, nil)
	get(t, app.Router, "/api/v1/goals")
	get(t, app.Router, "/api/v1/goals?sort=bogus")

	rec := get(t, app.Router, "/metrics")
	var env struct {
		Data struct {
			RequestsTotal     uint64                       `json:"requestsTotal"`
			ClientErrorsTotal uint64                       `json:"clientErrorsTotal"`
			Operations        map[string]map[string]uint64 `json:"operations"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if env.Data.RequestsTotal != 2 || env.Data.ClientErrorsTotal != 1 {
		t.Fatalf("unexpected request counters: %+v", env.Data)
	}
	if env.Data.Operations["list_goals"]["ok"] != 1 {
		t.Fatalf("expected one recorded list_goals, got %+v", env.Data.Operations)
	}
}

func TestMetricsCanBeDisabled(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) { cfg.MetricsEnabled = false })
	rec := get(t, app.Router, "/metrics")
	if strings.Contains(rec.Body.String(), "requestsTotal") {
		t.Fatalf("expected metrics to be hidden, got %s", rec.Body.String())
	}
}

func TestSPAFallsBackToIndex(t *testing.T) {
	app := newTestApp(t, nil)
	rec := get(t, app.Router, "/goals/anything")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "perftrack") {
		t.Fatalf("expected index fallback, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) { cfg.Addr = "127.0.0.1:0" })
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
