package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

// loginPath is resolved against the collection root: the login endpoint
// sits next to it under /api/auth/.
const loginPath = "../auth/login"

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges a username and password for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	raw, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	ref, _ := url.Parse(loginPath)
	target := c.baseURL.ResolveReference(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("login: %w: %w", domain.ErrTransport, err)
	}
	defer drain(resp)

	if !success(resp.StatusCode) {
		if resp.StatusCode == http.StatusUnauthorized {
			return "", fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("login: %w", statusError(resp, true))
	}

	var out loginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return "", fmt.Errorf("login: %w: %w", domain.ErrDecode, err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("login: %w: empty token", domain.ErrDecode)
	}

	c.log.Debug().Str("username", username).Msg("logged in")
	return out.Token, nil
}
