package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)

	RespondWithJSON(recorder, req, http.StatusOK, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "world", body["hello"])
}

func TestRespondWithValidationErrors(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/posts", nil)

	RespondWithValidationErrors(recorder, req, map[string][]string{
		"title": {"is required"},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "validation failed", resp.Message)
	assert.Equal(t, []string{"is required"}, resp.Errors["title"])
}

func TestRespondWithErrorAndLogEmptyBodyStatuses(t *testing.T) {
	t.Parallel()

	// 401/403/404 carry no response body, only the status code.
	for _, status := range []int{
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
	} {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/test", nil)

		RespondWithErrorAndLog(recorder, req, status, "denied", nil)

		assert.Equal(t, status, recorder.Code)
		assert.Empty(t, recorder.Body.String())
	}
}

func TestRespondWithErrorAndLogJSONBody(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)

	RespondWithErrorAndLog(recorder, req, http.StatusInternalServerError, "something broke", assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "something broke", resp.Message)
	// The raw error never leaks into the response body.
	assert.NotContains(t, recorder.Body.String(), assert.AnError.Error())
}

func TestTraceIDRoundTrip(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/test", nil)
	assert.Empty(t, GetTraceID(req.Context()))

	ctx := SetTraceID(req.Context())
	assert.NotEmpty(t, GetTraceID(ctx))
}

func TestUserIDContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/test", nil)

	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)

	ctx := WithUserID(req.Context(), 42)
	userID, ok := UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), userID)

	// Zero and negative IDs are rejected.
	_, ok = UserIDFromContext(WithUserID(req.Context(), 0))
	assert.False(t, ok)
}
