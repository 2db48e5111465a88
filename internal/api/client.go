// Package api is the REST client for the dashboard backend. Every
// call attaches the session credential when one is present; failures
// surface as *domain.APIError (status 0 for network-level failures).
// The client itself never retries.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
)

// Client wraps a Hertz client for HTTP communication with the backend.
type Client struct {
	client *client.Client
	server string
	token  string
}

// NewClient creates a REST client for the given base URL. token may be
// empty for unauthenticated calls (login, register).
func NewClient(server, token string) (*Client, error) {
	normalized, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithMaxIdleConnDuration(60*time.Second),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &Client{
		client: c,
		server: normalized,
		token:  token,
	}, nil
}

// SetToken replaces the credential used for subsequent calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// normalizeServerURL ensures the base URL has a scheme and no trailing
// path or slash.
func normalizeServerURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// do performs a JSON request. body and out may be nil. Non-2xx
// responses become *domain.APIError carrying the status and a
// best-effort message from the body; errors below HTTP become
// *domain.APIError with status 0.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.server + path)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		bodyBytes, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBody(bodyBytes)
	}

	if err := c.client.Do(ctx, req, resp); err != nil {
		return domain.NewNetworkError(err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return domain.NewAPIError(status, extractMessage(resp.Body(), status))
	}

	if out != nil && len(resp.Body()) > 0 {
		if err := sonic.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

// extractMessage pulls a human-readable message out of an error body.
// The backend usually returns {"message": "..."} but message may also
// be an array of validation errors; anything unparseable falls back to
// a generic message.
func extractMessage(body []byte, status int) string {
	var payload struct {
		Message any    `json:"message"`
		Error   string `json:"error"`
	}
	if err := sonic.Unmarshal(body, &payload); err == nil {
		switch m := payload.Message.(type) {
		case string:
			if m != "" {
				return m
			}
		case []any:
			parts := make([]string, 0, len(m))
			for _, p := range m {
				if s, ok := p.(string); ok {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, "; ")
			}
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}
