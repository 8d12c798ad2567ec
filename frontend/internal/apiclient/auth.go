package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/journey-mate/journeymate/shared/api"
	apperrors "github.com/journey-mate/journeymate/shared/errors"
	"github.com/journey-mate/journeymate/shared/logger"
)

const (
	createAccountPath = "/api/users/add"
	loginPath         = "/api/users/login"
)

// CreateAccount registers a user. Any 2xx status counts as success; the
// body is only logged.
func (c *APIClient) CreateAccount(ctx context.Context, req api.CreateAccountRequest) error {
	logger.Log.Debug("registration request", "username", req.Username, "email", req.Email)

	resp, err := c.postJSON(ctx, createAccountPath, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	logger.Log.Debug("registration response", "status", resp.StatusCode, "body", string(bodyBytes))
	return nil
}

// Authenticate exchanges credentials for a session token. Only 200 is a
// success; other 2xx statuses are reported as unexpected statuses.
func (c *APIClient) Authenticate(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	logger.Log.Debug("login request", "email", req.Email)

	resp, err := c.postJSON(ctx, loginPath, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// a 201 or 204 carries no token, so it surfaces as an unknown failure
	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.ErrorWithStatusCode{StatusCode: resp.StatusCode}
	}

	var body api.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}
	logger.Log.Debug("login response", "status", resp.StatusCode, "is_admin", body.IsAdmin)
	return &body, nil
}
