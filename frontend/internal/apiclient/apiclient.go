package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/journey-mate/journeymate/shared/api"
	apperrors "github.com/journey-mate/journeymate/shared/errors"
	"github.com/journey-mate/journeymate/shared/middleware/metrics"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// APIClient struct handles all communication with the backend API.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
}

// New creates a client for the backend at baseURL. A zero timeout leaves
// requests bounded only by their context.
func New(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HttpClient: &http.Client{Timeout: timeout},
	}
}

// postJSON sends payload to path and returns the response if its status is
// 2xx. Failures come back as the typed errors of shared/errors:
// RequestError when nothing was sent, NetworkError when nothing came back,
// ErrorWithStatusCode for an error status.
func (c *APIClient) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, &apperrors.RequestError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, &apperrors.RequestError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HttpClient.Do(req)
	if err != nil {
		metrics.ObserveBackendCall(path, "error", time.Since(start))
		return nil, &apperrors.NetworkError{Err: err}
	}
	metrics.ObserveBackendCall(path, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, statusError(resp)
	}
	return resp, nil
}

// statusError reads the optional {"message": ...} body of a failed call.
// Bodies that are not JSON leave the message empty.
func statusError(resp *http.Response) error {
	e := &apperrors.ErrorWithStatusCode{StatusCode: resp.StatusCode}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return e
	}
	var body api.ErrorResponse
	if json.Unmarshal(bodyBytes, &body) == nil {
		e.Message = body.Message
	}
	return e
}
