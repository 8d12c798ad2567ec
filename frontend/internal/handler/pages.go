package handler

import (
	"net/http"

	"github.com/journey-mate/journeymate/frontend/internal/authform"
	frontend_domain "github.com/journey-mate/journeymate/frontend/internal/domain"
)

func (h *Handler) IndexGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "index.html", nil)
}

// BookingsGetHandler is the default destination after login.
func (h *Handler) BookingsGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "account.html", frontend_domain.AccountPageData{Admin: false})
}

// AdminGetHandler is the destination after an admin login.
func (h *Handler) AdminGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "account.html", frontend_domain.AccountPageData{Admin: true})
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.tokenStore(w, r).Clear(authform.TokenKey)
	h.redirectWithFlash(w, r, formURL(authform.ModeLogin), flashCookieSuccess, "You have been logged out")
}
