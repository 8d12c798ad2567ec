package handler

import (
	"encoding/base64"
	"net/http"
)

const (
	flashCookieError   = "flash_error"
	flashCookieSuccess = "flash_success"
	prefillEmailCookie = "prefill_email"
	prefillNameCookie  = "prefill_username"

	flashMaxAge = 300 // enough for the redirect that follows
)

// setFlash stores a one-shot value, base64 encoded so any text survives the
// cookie value grammar.
func (h *Handler) setFlash(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.StdEncoding.EncodeToString([]byte(value)),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		Secure:   h.Public.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads a flash value and expires it.
func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Public.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, url, name, value string) {
	h.setFlash(w, name, value)
	http.Redirect(w, r, url, http.StatusSeeOther)
}
