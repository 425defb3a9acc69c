package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func TestRateLimit(t *testing.T) {
	srv := newTestServer(&stubConverter{}, t.TempDir())
	srv.limiter = rate.NewLimiter(rate.Limit(1), 1)
	handler := srv.routes()

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("First request should pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429 past the burst, got %d", second.Code)
	}
}

func TestOpsEndpointsSkipRateLimit(t *testing.T) {
	srv := newTestServer(&stubConverter{}, t.TempDir())
	srv.limiter = rate.NewLimiter(rate.Limit(0), 0)
	handler := srv.routes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Health endpoint should not be rate limited, got %d", rec.Code)
	}
}

func TestCORSOnHealth(t *testing.T) {
	srv := newTestServer(&stubConverter{}, t.TempDir())
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected CORS origin *, got %q", got)
	}
}
