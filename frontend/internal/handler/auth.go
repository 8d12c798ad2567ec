package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/journey-mate/journeymate/frontend/internal/authform"
	frontend_domain "github.com/journey-mate/journeymate/frontend/internal/domain"
	"github.com/journey-mate/journeymate/frontend/internal/middleware"
	"github.com/journey-mate/journeymate/shared/logger"
	"github.com/journey-mate/journeymate/shared/middleware/metrics"
)

const authPath = "/auth"

// webResponse collects what the controller asked for while handling one
// request. The handler turns it into flash cookies and a redirect.
type webResponse struct {
	route   string
	notices []string
}

func (w *webResponse) Navigate(route string) { w.route = route }
func (w *webResponse) Notify(message string) { w.notices = append(w.notices, message) }

func (w *webResponse) notice() string { return strings.Join(w.notices, " ") }

func (h *Handler) newController(w http.ResponseWriter, r *http.Request, resp *webResponse) *authform.Controller {
	key := middleware.GetFormSessionFromContext(r)
	if key == "" {
		// without a form session there is nothing to group submissions by
		key = uuid.NewString()
	}
	return authform.New(
		authform.Deps{
			Accounts:  h.Accounts,
			Tokens:    h.tokenStore(w, r),
			Navigator: resp,
			Notifier:  resp,
		},
		authform.WithRoutes(h.routes()),
		authform.WithClearOnFailure(h.Public.Form.ShouldClearOnFailure()),
		authform.WithGuard(h.Guard, key),
	)
}

func formURL(m authform.Mode) string {
	return authPath + "?mode=" + m.Key()
}

func (h *Handler) AuthGetHandler(w http.ResponseWriter, r *http.Request) {
	mode, err := authform.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		mode = authform.ModeLogin
	}

	// only set after a failed submission with clear_on_failure disabled
	values := authform.FormValues{
		Username: h.popFlash(w, r, prefillNameCookie),
		Email:    h.popFlash(w, r, prefillEmailCookie),
	}

	h.renderTemplate(w, r, "auth.html", authPageData(mode, values, nil))
}

func (h *Handler) AuthPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, authPath, flashCookieError, "Invalid form data.")
		return
	}
	mode, err := authform.ParseMode(r.PostFormValue("mode"))
	if err != nil {
		logger.Log.Warn("auth form posted with unknown mode", "mode", r.PostFormValue("mode"))
		h.redirectWithFlash(w, r, authPath, flashCookieError, "Invalid form data.")
		return
	}

	resp := &webResponse{}
	c := h.newController(w, r, resp)
	c.SwitchMode(mode)
	for _, f := range mode.Fields() {
		c.Set(f, r.PostFormValue(string(f)))
	}

	out := c.Submit(r.Context())
	metrics.RecordSubmission(mode.Key(), string(out.Kind), string(out.Class))

	switch out.Kind {
	case authform.OutcomeInvalid:
		h.renderTemplateWithStatus(w, r, "auth.html", authPageData(mode, c.Values(), out.Errors), http.StatusUnprocessableEntity)
	case authform.OutcomeSucceeded:
		h.redirectWithFlash(w, r, resp.route, flashCookieSuccess, resp.notice())
	default:
		if out.Kind == authform.OutcomeFailed && !h.Public.Form.ShouldClearOnFailure() {
			kept := c.Values()
			h.setFlash(w, prefillEmailCookie, kept.Email)
			h.setFlash(w, prefillNameCookie, kept.Username)
		}
		h.redirectWithFlash(w, r, formURL(mode), flashCookieError, resp.notice())
	}
}

func inputType(f authform.Field) string {
	switch {
	case f.Secret():
		return "password"
	case f == authform.FieldEmail:
		return "email"
	default:
		return "text"
	}
}

func authPageData(mode authform.Mode, values authform.FormValues, errs authform.ValidationErrors) frontend_domain.AuthPageData {
	data := frontend_domain.AuthPageData{
		Title:     mode.String(),
		ModeKey:   mode.Key(),
		OtherKey:  mode.Other().Key(),
		OtherName: mode.Other().String(),
	}
	for _, f := range mode.Fields() {
		view := frontend_domain.FieldView{
			Name:        string(f),
			Type:        inputType(f),
			Placeholder: f.Label(),
			Error:       errs[f],
		}
		if !f.Secret() {
			view.Value = values.Get(f)
		}
		data.Fields = append(data.Fields, view)
	}
	return data
}
