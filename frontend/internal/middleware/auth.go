package middleware

import (
	"encoding/base64"
	"net/http"
)

const (
	flashCookieError = "flash_error"
	loginPath        = "/auth?mode=login"
)

// NeedToken redirects to the login form unless the request carries a
// non-empty cookie named tokenCookie. The token is opaque to the frontend;
// the backend decides whether it is still good.
func NeedToken(tokenCookie string, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(tokenCookie)
			if err != nil || cookie.Value == "" {
				redirectToLogin(w, r, secureCookies, "Please log in to continue")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, secureCookies bool, errorMsg string) {
	// base64 keeps arbitrary text inside the cookie value grammar
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieError,
		Value:    base64.StdEncoding.EncodeToString([]byte(errorMsg)),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}
