package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/journey-mate/journeymate/frontend/internal/authform"
	frontend_domain "github.com/journey-mate/journeymate/frontend/internal/domain"
	"github.com/journey-mate/journeymate/frontend/internal/middleware"
	"github.com/journey-mate/journeymate/frontend/internal/session"
	"github.com/journey-mate/journeymate/shared/logger"
)

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common frontend_domain.CommonTemplateData
}

func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) frontend_domain.CommonTemplateData {
	_, signedIn := h.tokenStore(w, r).Get(authform.TokenKey)
	return frontend_domain.CommonTemplateData{
		Error:     h.popFlash(w, r, flashCookieError),
		Success:   h.popFlash(w, r, flashCookieSuccess),
		CSRFToken: middleware.CSRFToken(r),
		SignedIn:  signedIn,
		Routes: frontend_domain.RouteData{
			Entry:   h.Public.Routes.Entry,
			Admin:   h.Public.Routes.Admin,
			Default: h.Public.Routes.Default,
		},
	}
}

func (h *Handler) tokenStore(w http.ResponseWriter, r *http.Request) *session.CookieStore {
	return session.NewCookieStore(w, r, session.CookieOptions{
		Secure: h.Public.Cookies.Secure,
		MaxAge: h.Public.Cookies.TokenMaxAge,
	})
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithStatus(w, r, name, data, http.StatusOK)
}

func (h *Handler) renderTemplateWithStatus(w http.ResponseWriter, r *http.Request, name string, data any, status int) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	wrapped := TemplateData{
		Data:   data,
		Common: h.initCommonTemplateData(w, r),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
