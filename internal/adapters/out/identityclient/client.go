// Package identityclient resolves connection credentials against the external
// auth service. The dispatch backend never mints or validates tokens itself;
// every credential presented on a realtime connection is forwarded here.
package identityclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

const verifyPath = "/api/v1/tokens/verify"

// Client verifies credentials against the auth service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an identity verification client for the auth service
// reachable at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
}

// Verify sends the credential to the auth service and maps the response to a
// verified identity. Any verification failure, including transport errors,
// is reported as a permission error so callers treat the connection as
// unauthenticated rather than retrying.
func (c *Client) Verify(ctx context.Context, credential string) (ports.Identity, error) {
	if credential == "" {
		return ports.Identity{}, errs.NewPermissionDeniedError("credential is required")
	}

	body, err := json.Marshal(verifyRequest{Token: credential})
	if err != nil {
		return ports.Identity{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+verifyPath, bytes.NewReader(body))
	if err != nil {
		return ports.Identity{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Identity{}, errs.NewPermissionDeniedErrorWithCause("credential could not be verified", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.Identity{}, errs.NewPermissionDeniedErrorWithCause(
			"credential was rejected",
			fmt.Errorf("auth service returned status %d", resp.StatusCode),
		)
	}

	var payload verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ports.Identity{}, errs.NewPermissionDeniedErrorWithCause("credential could not be verified", err)
	}

	id, err := kernel.UUIDFromString(payload.UserID)
	if err != nil {
		return ports.Identity{}, errs.NewPermissionDeniedErrorWithCause("credential carries an invalid identity", err)
	}

	role, err := kernel.RoleFromString(payload.Role)
	if err != nil {
		return ports.Identity{}, errs.NewPermissionDeniedErrorWithCause("credential carries an invalid role", err)
	}

	return ports.Identity{
		ID:   id,
		Role: role,
		Name: payload.Name,
	}, nil
}
