package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"

	"github.com/journey-mate/journeymate/shared/logger"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfTokenBytes = 32
	csrfMaxAge     = 24 * 60 * 60
)

type contextKey string

const (
	csrfTokenContextKey   contextKey = "csrf_token"
	formSessionContextKey contextKey = "form_session"
)

// CSRF is a double-submit cookie check. Every response carries the token
// cookie and the request context carries the same token for templates.
// Unsafe methods must echo it in the csrf_token form field or the
// X-CSRF-Token header.
func CSRF(secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookieToken := ""
			if c, err := r.Cookie(csrfCookieName); err == nil {
				cookieToken = c.Value
			}

			if !safeMethod(r.Method) {
				if cookieToken == "" || !sameToken(cookieToken, submittedToken(r)) {
					logger.Log.Warn("CSRF check failed", "path", r.URL.Path, "has_cookie", cookieToken != "")
					http.Error(w, "Form expired, reload the page and try again", http.StatusForbidden)
					return
				}
			}

			if cookieToken == "" {
				token, err := newCSRFToken()
				if err != nil {
					logger.Log.Error("failed to generate CSRF token", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				cookieToken = token
				http.SetCookie(w, &http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   csrfMaxAge,
					HttpOnly: true,
					Secure:   secureCookies,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), csrfTokenContextKey, cookieToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CSRFToken is the token to embed in forms rendered for r.
func CSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenContextKey).(string)
	return token
}

func safeMethod(m string) bool {
	return m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions
}

func submittedToken(r *http.Request) string {
	if h := r.Header.Get(csrfHeader); h != "" {
		return h
	}
	// PostFormValue parses the body once; handlers read the parsed form
	return r.PostFormValue(csrfFormField)
}

func sameToken(a, b string) bool {
	return b != "" && subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
