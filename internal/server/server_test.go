package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })

	t.Run("all dependencies reachable", func(t *testing.T) {
		s := New(":0", "release", map[string]HealthChecker{
			"database": PingFunc(func(context.Context) error { return nil }),
			"cache":    cache,
		})

		resp := httptest.NewRecorder()
		s.Engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, resp.Code)
		require.JSONEq(t, `{"status":"healthy","database":"connected","cache":"connected"}`, resp.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		s := New(":0", "release", map[string]HealthChecker{
			"database": PingFunc(func(context.Context) error { return errors.New("connection refused") }),
			"cache":    cache,
		})

		resp := httptest.NewRecorder()
		s.Engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, resp.Code)
		require.JSONEq(t, `{"status":"unhealthy","database":"unreachable","cache":"connected"}`, resp.Body.String())
	})

	t.Run("cache down", func(t *testing.T) {
		s := New(":0", "release", map[string]HealthChecker{"cache": cache})
		mr.SetError("ERR injected failure")
		t.Cleanup(func() { mr.SetError("") })

		resp := httptest.NewRecorder()
		s.Engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(":0", "release", nil)

	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, strings.Contains(resp.Body.String(), "go_goroutines"))
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := New("127.0.0.1:0", "release", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	require.NoError(t, <-done)
}
