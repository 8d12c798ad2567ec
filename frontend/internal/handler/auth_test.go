package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journey-mate/journeymate/frontend/internal/apiclient"
	"github.com/journey-mate/journeymate/frontend/internal/middleware"
)

func signUpForm() url.Values {
	return url.Values{
		"mode":     {"signup"},
		"username": {"john_doe"},
		"email":    {"john@example.com"},
		"password": {"123456"},
		"confirm":  {"123456"},
	}
}

func loginForm() url.Values {
	return url.Values{
		"mode":     {"login"},
		"email":    {"john@example.com"},
		"password": {"123456"},
	}
}

func TestAuthGetHandler(t *testing.T) {
	h := newTestHandler(t, newFakeBackend())

	t.Run("login shows two fields", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.AuthGetHandler(rec, httptest.NewRequest(http.MethodGet, "/auth?mode=login", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `placeholder="Email Id"`)
		assert.Contains(t, body, `placeholder="Password"`)
		assert.NotContains(t, body, `placeholder="Name"`)
		assert.NotContains(t, body, `placeholder="Re-Password"`)
		assert.Contains(t, body, `href="/auth?mode=signup"`)
	})

	t.Run("sign up shows four fields", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.AuthGetHandler(rec, httptest.NewRequest(http.MethodGet, "/auth?mode=signup", nil))

		body := rec.Body.String()
		assert.Contains(t, body, `placeholder="Name"`)
		assert.Contains(t, body, `placeholder="Re-Password"`)
		assert.Contains(t, body, "<title>Sign Up | Journey Mate</title>")
	})

	t.Run("unknown mode falls back to login", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.AuthGetHandler(rec, httptest.NewRequest(http.MethodGet, "/auth?mode=teleport", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), `placeholder="Name"`)
	})

	t.Run("flash and prefill are shown once", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth?mode=login", nil)
		req.AddCookie(flashCookie(flashCookieError, "Login failed: Server Error"))
		req.AddCookie(flashCookie(prefillEmailCookie, "kept@example.com"))
		rec := httptest.NewRecorder()
		h.AuthGetHandler(rec, req)

		body := rec.Body.String()
		assert.Contains(t, body, "Login failed: Server Error")
		assert.Contains(t, body, `value="kept@example.com"`)
		assert.Equal(t, -1, findCookie(rec, flashCookieError).MaxAge)
	})
}

func TestAuthPostHandler_SignUpSuccess(t *testing.T) {
	backend := newFakeBackend()
	h := newTestHandler(t, backend)

	rec := postForm(h.AuthPostHandler, signUpForm())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "Registered successfully", flashValue(t, rec, flashCookieSuccess))

	calls := backend.calls("/api/users/add")
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{
		"username": "john_doe",
		"email":    "john@example.com",
		"password": "123456",
		"confirm":  "123456",
	}, calls[0])
	assert.Nil(t, findCookie(rec, "token"), "sign up does not sign in")
}

func TestAuthPostHandler_LoginSuccess(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantPath string
	}{
		{"admin", `{"token":"abc","isAdmin":true}`, "/admin"},
		{"regular user", `{"token":"abc","isAdmin":false}`, "/book"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend()
			backend.loginBody = tt.body
			h := newTestHandler(t, backend)

			rec := postForm(h.AuthPostHandler, loginForm())

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.wantPath, rec.Header().Get("Location"))
			assert.Equal(t, "Login successful", flashValue(t, rec, flashCookieSuccess))

			token := findCookie(rec, "token")
			require.NotNil(t, token)
			assert.Equal(t, "abc", token.Value)
			assert.True(t, token.HttpOnly)

			calls := backend.calls("/api/users/login")
			require.Len(t, calls, 1)
			assert.Equal(t, map[string]any{"email": "john@example.com", "password": "123456"}, calls[0])
		})
	}
}

func TestAuthPostHandler_Failures(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		status     int
		body       string
		wantNotice string
		wantPath   string
	}{
		{"login 401 with message", loginForm(), http.StatusUnauthorized, `{"message":"bad password"}`, "Login failed: bad password", "/auth?mode=login"},
		{"login 400 without message", loginForm(), http.StatusBadRequest, `{}`, "Login failed: Invalid credentials", "/auth?mode=login"},
		{"login 404", loginForm(), http.StatusNotFound, `{"message":"ignored"}`, "Login failed: Not Found", "/auth?mode=login"},
		{"sign up 500", signUpForm(), http.StatusInternalServerError, `{"message":"db down"}`, "Sign Up failed: Server Error", "/auth?mode=signup"},
		{"sign up 409", signUpForm(), http.StatusConflict, `{"message":"Email already exists"}`, "Sign Up failed: Email already exists", "/auth?mode=signup"},
		{"sign up 418 without message", signUpForm(), http.StatusTeapot, ``, "Sign Up failed: An unknown error occurred", "/auth?mode=signup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend()
			backend.addStatus, backend.addBody = tt.status, tt.body
			backend.loginStatus, backend.loginBody = tt.status, tt.body
			h := newTestHandler(t, backend)

			rec := postForm(h.AuthPostHandler, tt.form)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.wantPath, rec.Header().Get("Location"))
			assert.Equal(t, tt.wantNotice, flashValue(t, rec, flashCookieError))
			assert.Nil(t, findCookie(rec, "token"))
			assert.Nil(t, findCookie(rec, prefillEmailCookie), "values are cleared after failure by default")
		})
	}
}

func TestAuthPostHandler_NetworkFailure(t *testing.T) {
	h := newTestHandler(t, newFakeBackend())
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	h.Accounts = apiclient.New(srv.URL, time.Second)

	rec := postForm(h.AuthPostHandler, loginForm())

	assert.Equal(t, "Login failed: Network error or no response from server", flashValue(t, rec, flashCookieError))
}

func TestAuthPostHandler_KeepValuesOnFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.loginStatus, backend.loginBody = http.StatusUnauthorized, `{"message":"bad password"}`
	h := newTestHandler(t, backend)
	keep := false
	h.Public.Form.ClearOnFailure = &keep

	rec := postForm(h.AuthPostHandler, loginForm())

	assert.Equal(t, "john@example.com", flashValue(t, rec, prefillEmailCookie))
}

func TestAuthPostHandler_Invalid(t *testing.T) {
	backend := newFakeBackend()
	h := newTestHandler(t, backend)
	form := url.Values{
		"mode":     {"signup"},
		"username": {"ab"},
		"email":    {"not-an-email"},
		"password": {"987654321x"},
		"confirm":  {"different"},
	}

	rec := postForm(h.AuthPostHandler, form)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Name must be at least 5 characters")
	assert.Contains(t, body, "Invalid email address")
	assert.Contains(t, body, "Password must contain only numbers")
	assert.Contains(t, body, "Passwords do not match")
	assert.Contains(t, body, `value="not-an-email"`, "typed values survive a failed validation")
	assert.NotContains(t, body, "987654321x", "passwords are never echoed")
	assert.Empty(t, backend.calls("/api/users/add"))
}

func TestAuthPostHandler_BadMode(t *testing.T) {
	h := newTestHandler(t, newFakeBackend())

	rec := postForm(h.AuthPostHandler, url.Values{"mode": {"teleport"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth", rec.Header().Get("Location"))
	assert.Equal(t, "Invalid form data.", flashValue(t, rec, flashCookieError))
}

func TestAuthPostHandler_Busy(t *testing.T) {
	backend := newFakeBackend()
	h := newTestHandler(t, backend)
	const session = "6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f"

	release, ok := h.Guard.Acquire(session)
	require.True(t, ok)
	defer release()

	handler := middleware.FormSession(false)(http.HandlerFunc(h.AuthPostHandler))
	rec := postForm(handler.ServeHTTP, loginForm(), &http.Cookie{Name: "form_session", Value: session})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth?mode=login", rec.Header().Get("Location"))
	assert.Equal(t, "A submission is already in progress", flashValue(t, rec, flashCookieError))
	assert.Empty(t, backend.calls("/api/users/login"))
}
