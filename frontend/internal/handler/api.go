package handler

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/journey-mate/journeymate/frontend/internal/authform"
	"github.com/journey-mate/journeymate/shared/api"
	"github.com/journey-mate/journeymate/shared/logger"
	"github.com/journey-mate/journeymate/shared/middleware/metrics"
)

const maxSubmitBody = 1 << 20

// AuthAPIHandler is the JSON twin of AuthPostHandler for script-driven
// pages. The outcome is reported in the body; the token cookie is set the
// same way.
func (h *Handler) AuthAPIHandler(w http.ResponseWriter, r *http.Request) {
	// cross-site form posts cannot send application/json without a preflight
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		writeJSON(w, http.StatusUnsupportedMediaType, api.ErrorResponse{Message: "Content-Type must be application/json"})
		return
	}

	var req api.SubmitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmitBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Message: "Body is invalid json"})
		return
	}
	mode, err := authform.ParseMode(req.Mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		return
	}

	resp := &webResponse{}
	c := h.newController(w, r, resp)
	c.SwitchMode(mode)
	c.Set(authform.FieldUsername, req.Username)
	c.Set(authform.FieldEmail, req.Email)
	c.Set(authform.FieldPassword, req.Password)
	c.Set(authform.FieldConfirm, req.Confirm)

	out := c.Submit(r.Context())
	metrics.RecordSubmission(mode.Key(), string(out.Kind), string(out.Class))

	status := http.StatusOK
	switch out.Kind {
	case authform.OutcomeInvalid:
		status = http.StatusUnprocessableEntity
	case authform.OutcomeBusy:
		status = http.StatusConflict
	}

	writeJSON(w, status, api.SubmitResponse{
		Outcome: string(out.Kind),
		Class:   string(out.Class),
		Notice:  out.Notice,
		Route:   resp.route,
		Errors:  out.Errors.Strings(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding JSON response", "error", err)
	}
}
