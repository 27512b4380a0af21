package mcp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("missing builder returns error", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Builder = nil
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingBuilderService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(newTestPorts(t))
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.Equal(t, DefaultRateLimit, server.rateLimit)
	})
}

func TestPorts_Validate(t *testing.T) {
	full := newTestPorts(t)

	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"empty", &Ports{}, ErrMissingBuilderService},
		{"missing templates", &Ports{Builder: full.Builder}, ErrMissingTemplateRegistry},
		{"site is optional", &Ports{Builder: full.Builder, Templates: full.Templates}, nil},
		{"all ports", full, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLimitRequests(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects requests beyond the burst", func(t *testing.T) {
		handler := limitRequests(ok, RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2})

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
			codes = append(codes, rec.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("sets Retry-After when limited", func(t *testing.T) {
		handler := limitRequests(ok, RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	})

	t.Run("zero rate disables limiting", func(t *testing.T) {
		handler := limitRequests(ok, RateLimitConfig{})

		for i := 0; i < 10; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestServer_WithRateLimit(t *testing.T) {
	server := newTestServer(t)
	cfg := RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1}

	assert.Same(t, server, server.WithRateLimit(cfg))
	assert.Equal(t, cfg, server.rateLimit)
	assert.NotNil(t, server.Handler())
}
