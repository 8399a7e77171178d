package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/api/shared"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/mocks"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/service/auth"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	// next records whether it ran and which user ID it saw.
	newNext := func() (http.Handler, *int64) {
		var seen int64
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := shared.UserIDFromContext(r.Context()); ok {
				seen = id
			}
			w.WriteHeader(http.StatusOK)
		})
		return handler, &seen
	}

	t.Run("valid token passes the user ID through", func(t *testing.T) {
		t.Parallel()
		mw := NewAuthMiddleware(&mocks.MockJWTService{
			Claims: &auth.Claims{UserID: 42},
		})
		next, seen := newNext()

		req := httptest.NewRequest(http.MethodGet, "/v1/user", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rr := httptest.NewRecorder()
		mw.Authenticate(next).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, int64(42), *seen)
	})

	rejections := []struct {
		name   string
		header string
		err    error
	}{
		{name: "missing header"},
		{name: "not a bearer scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "malformed header", header: "Bearer"},
		{name: "expired token", header: "Bearer expired", err: auth.ErrExpiredToken},
		{name: "invalid token", header: "Bearer garbage", err: auth.ErrInvalidToken},
		{name: "refresh token on an access route", header: "Bearer refresh", err: auth.ErrWrongTokenType},
	}

	for _, tt := range rejections {
		tt := tt
		t.Run(tt.name+" is a bare 401", func(t *testing.T) {
			t.Parallel()
			mw := NewAuthMiddleware(&mocks.MockJWTService{Err: tt.err})
			next, seen := newNext()

			req := httptest.NewRequest(http.MethodGet, "/v1/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			mw.Authenticate(next).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Zero(t, rr.Body.Len())
			assert.Zero(t, *seen)
		})
	}

	t.Run("unexpected validation failure is a 500", func(t *testing.T) {
		t.Parallel()
		mw := NewAuthMiddleware(&mocks.MockJWTService{
			ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, errors.New("key store unreachable")
			},
		})
		next, _ := newNext()

		req := httptest.NewRequest(http.MethodGet, "/v1/user", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rr := httptest.NewRecorder()
		mw.Authenticate(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
