package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journey-mate/journeymate/shared/api"
)

func postJSON(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeSubmit(t *testing.T, rec *httptest.ResponseRecorder) api.SubmitResponse {
	t.Helper()
	var resp api.SubmitResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestAuthAPIHandler(t *testing.T) {
	t.Run("login success sets the token cookie", func(t *testing.T) {
		backend := newFakeBackend()
		backend.loginBody = `{"token":"abc","isAdmin":true}`
		h := newTestHandler(t, backend)

		rec := postJSON(h.AuthAPIHandler, `{"mode":"login","email":"john@example.com","password":"123456"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "abc", findCookie(rec, "token").Value)
		assert.Equal(t, api.SubmitResponse{
			Outcome: "succeeded",
			Notice:  "Login successful",
			Route:   "/admin",
			Errors:  map[string]string{},
		}, normalise(decodeSubmit(t, rec)))
	})

	t.Run("hidden fields are ignored in login mode", func(t *testing.T) {
		backend := newFakeBackend()
		h := newTestHandler(t, backend)

		rec := postJSON(h.AuthAPIHandler, `{"mode":"login","username":"x","email":"john@example.com","password":"123456","confirm":"9"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		calls := backend.calls("/api/users/login")
		require.Len(t, calls, 1)
		assert.NotContains(t, calls[0], "username")
		assert.NotContains(t, calls[0], "confirm")
	})

	t.Run("failure is reported with its class", func(t *testing.T) {
		backend := newFakeBackend()
		backend.addStatus, backend.addBody = http.StatusInternalServerError, `{}`
		h := newTestHandler(t, backend)

		rec := postJSON(h.AuthAPIHandler, `{"mode":"signup","username":"john_doe","email":"john@example.com","password":"123456","confirm":"123456"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeSubmit(t, rec)
		assert.Equal(t, "failed", resp.Outcome)
		assert.Equal(t, "server_error", resp.Class)
		assert.Equal(t, "Sign Up failed: Server Error", resp.Notice)
		assert.Empty(t, resp.Route)
	})

	t.Run("validation errors", func(t *testing.T) {
		backend := newFakeBackend()
		h := newTestHandler(t, backend)

		rec := postJSON(h.AuthAPIHandler, `{"mode":"login"}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		resp := decodeSubmit(t, rec)
		assert.Equal(t, "invalid", resp.Outcome)
		assert.Equal(t, map[string]string{
			"email":    "Email is required",
			"password": "Password is required",
		}, resp.Errors)
		assert.Empty(t, backend.calls("/api/users/login"))
	})

	t.Run("bad json", func(t *testing.T) {
		h := newTestHandler(t, newFakeBackend())
		rec := postJSON(h.AuthAPIHandler, `{"mode":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("plain text body is refused", func(t *testing.T) {
		backend := newFakeBackend()
		h := newTestHandler(t, backend)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/submit", strings.NewReader(`{"mode":"login","email":"john@example.com","password":"123456"}`))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		h.AuthAPIHandler(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Empty(t, backend.calls("/api/users/login"))
	})

	t.Run("unknown mode", func(t *testing.T) {
		h := newTestHandler(t, newFakeBackend())
		rec := postJSON(h.AuthAPIHandler, `{"mode":"teleport"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// normalise maps a nil error map to an empty one so responses compare equal
// whether or not "errors" was present.
func normalise(r api.SubmitResponse) api.SubmitResponse {
	if r.Errors == nil {
		r.Errors = map[string]string{}
	}
	return r
}
