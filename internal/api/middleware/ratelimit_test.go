package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Limit(t *testing.T) {
	t.Parallel()

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	doRequest := func(handler http.Handler, remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	t.Run("requests within the burst pass", func(t *testing.T) {
		t.Parallel()
		handler := NewRateLimiter(1, 3).Limit(okHandler)

		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234"))
		}
	})

	t.Run("requests beyond the burst are rejected with 429", func(t *testing.T) {
		t.Parallel()
		handler := NewRateLimiter(1, 2).Limit(okHandler)

		require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.2:1234"))
		require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.2:1234"))
		assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.2:1234"))
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		t.Parallel()
		handler := NewRateLimiter(1, 1).Limit(okHandler)

		require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.3:1234"))
		require.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.3:5678"))
		assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.4:1234"))
	})

	t.Run("non-positive rps disables limiting", func(t *testing.T) {
		t.Parallel()
		handler := NewRateLimiter(0, 1).Limit(okHandler)

		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.5:1234"))
		}
	})
}
