package handler

import (
	"html/template"
	"net/http"

	"github.com/journey-mate/journeymate/frontend/internal/authform"
	"github.com/journey-mate/journeymate/shared/config"
)

type Handler struct {
	Templates map[string]*template.Template
	Public    config.Public
	Accounts  authform.AccountsAPI
	Guard     *authform.SubmitGuard
}

func New(templates map[string]*template.Template, publicCfg config.Public, accounts authform.AccountsAPI) *Handler {
	return &Handler{
		Templates: templates,
		Public:    publicCfg,
		Accounts:  accounts,
		Guard:     authform.NewSubmitGuard(),
	}
}

func (h *Handler) routes() authform.Routes {
	return authform.Routes{
		Entry:   h.Public.Routes.Entry,
		Admin:   h.Public.Routes.Admin,
		Default: h.Public.Routes.Default,
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
