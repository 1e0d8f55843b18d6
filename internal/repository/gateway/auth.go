package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nexapay/admin-portal/internal/core/port"
)

// Login authenticates against POST /auth/login. A rejected attempt is not an
// error at this layer: the envelope comes back with Status=false and the
// backend's message, and the session service decides how to surface it.
// Transport failures still return classified errors.
func (c *Client) Login(ctx context.Context, username, password string) (*port.LoginResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", "", nil, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, classifyTransportError(err)
	}

	var result port.LoginResult
	if err := json.Unmarshal(raw, &result); err != nil {
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "malformed gateway response"}
	}

	return &result, nil
}

// ChangePassword forwards a password change to the gateway on behalf of the
// signed-in user.
func (c *Client) ChangePassword(ctx context.Context, bearer, userID, currentPassword, newPassword string) error {
	if userID == "" {
		return errors.New("gateway: user id is required")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/users/"+userID+"/password", bearer, nil, map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	})
	if err != nil {
		return err
	}

	return c.do(c.http, req, nil)
}
