package authform

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	apperrors "github.com/journey-mate/journeymate/shared/errors"
)

// FailureClass groups submission failures by how they are reported.
type FailureClass string

const (
	ClassInvalidCredentials FailureClass = "invalid_credentials"
	ClassNotFound           FailureClass = "not_found"
	ClassServerError        FailureClass = "server_error"
	ClassUnknown            FailureClass = "unknown"
	ClassNetwork            FailureClass = "network"
	ClassClientUnexpected   FailureClass = "client_unexpected"
)

const (
	reasonInvalidCredentials = "Invalid credentials"
	reasonNotFound           = "Not Found"
	reasonServerError        = "Server Error"
	reasonUnknown            = "An unknown error occurred"
	reasonNetwork            = "Network error or no response from server"
	reasonUnexpected         = "An unexpected error occurred"
)

// Server messages end up in notices; strip any markup a proxy or error page
// may have put there.
var messagePolicy = bluemonday.StrictPolicy()

// Classify maps a submission error onto its failure class. Errors outside
// the backend taxonomy count as client-side unexpected errors.
func Classify(err error) FailureClass {
	var statusErr *apperrors.ErrorWithStatusCode
	var netErr *apperrors.NetworkError
	switch {
	case errors.As(err, &statusErr):
		switch statusErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized:
			return ClassInvalidCredentials
		case http.StatusNotFound:
			return ClassNotFound
		case http.StatusInternalServerError:
			return ClassServerError
		default:
			return ClassUnknown
		}
	case errors.As(err, &netErr):
		return ClassNetwork
	default:
		return ClassClientUnexpected
	}
}

// FailureReason is the user-facing explanation for err.
func FailureReason(err error) string {
	var serverMsg string
	var statusErr *apperrors.ErrorWithStatusCode
	if errors.As(err, &statusErr) {
		serverMsg = cleanServerMessage(statusErr.Message)
	}

	switch Classify(err) {
	case ClassInvalidCredentials:
		return orDefault(serverMsg, reasonInvalidCredentials)
	case ClassNotFound:
		return reasonNotFound
	case ClassServerError:
		return reasonServerError
	case ClassUnknown:
		return orDefault(serverMsg, reasonUnknown)
	case ClassNetwork:
		return reasonNetwork
	default:
		return reasonUnexpected
	}
}

// FailureNotice names the attempted action, e.g. "Login failed: bad password".
func FailureNotice(m Mode, err error) string {
	return fmt.Sprintf("%s failed: %s", m, FailureReason(err))
}

func cleanServerMessage(msg string) string {
	return strings.TrimSpace(html.UnescapeString(messagePolicy.Sanitize(msg)))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
