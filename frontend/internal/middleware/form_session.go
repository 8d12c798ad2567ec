package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const formSessionCookieName = "form_session"

// FormSession gives every browser a stable random id. Submissions that
// share an id are serialised by the auth form's in-flight guard.
func FormSession(secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cookie, err := r.Cookie(formSessionCookieName); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     formSessionCookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secureCookies,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), formSessionContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetFormSessionFromContext(r *http.Request) string {
	id, _ := r.Context().Value(formSessionContextKey).(string)
	return id
}
