// Package client is the typed client for the platform's admin REST API. It
// owns the two cross-cutting behaviors of the console's outbound traffic:
// attaching the session's bearer token to every request, and clearing the
// session the moment any response comes back 401 or 403.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amresh-singh-kipm/quick-admin/pkg/logger"
)

// SessionState is the slice of the session store the client needs: the
// current token, and the ability to drop it on an auth failure.
type SessionState interface {
	Token() string
	Clear() error
}

// Client calls the platform admin API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	session SessionState
	log     *logger.Logger
}

// New creates a Client bound to baseURL.
func New(baseURL string, sess SessionState, timeout time.Duration, log *logger.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing API base URL: %w", err)
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		session: sess,
		log:     log.WithComponent("api_client"),
	}, nil
}

// do issues one API request. A nil out discards the response body. Every
// failure comes back as a single error: transport errors wrapped, non-2xx
// responses as *APIError, and 401/403 as ErrSessionExpired after the session
// has been cleared.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = new(bytes.Buffer)
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// Global and unconditional: any auth failure ends the session.
		if clearErr := c.session.Clear(); clearErr != nil {
			c.log.Warn("failed to clear session after auth failure", "error", clearErr)
		}
		c.log.Info("session ended by server", "status", resp.StatusCode, "path", path)
		return &APIError{StatusCode: resp.StatusCode, Message: decodeMessage(resp)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: decodeMessage(resp)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// decodeMessage pulls the conventional error message out of a failure body.
func decodeMessage(resp *http.Response) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
