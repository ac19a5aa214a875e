// Package gateway is the chokepoint through which every backend request
// passes: it attaches the live credential, carries cookies, echoes the
// CSRF token on state-changing calls, and turns a 401 into a cleared
// session plus ErrSessionExpired.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/easybank/portal/internal/logging"
	"github.com/easybank/portal/internal/session"
)

// csrfBootstrapPath is a public GET whose response sets the CSRF
// cookie. Fetched at most once per client; the token is cached for the
// session's lifetime.
const csrfBootstrapPath = "/notices"

// csrfCookieNames are the cookie spellings backends use for the token.
var csrfCookieNames = []string{"XSRF-TOKEN", "XSRF_TOKEN", "_csrf"}

const csrfHeader = "X-XSRF-TOKEN"

type Client struct {
	Logger *logrus.Logger

	baseURL    *url.URL
	httpClient *http.Client
	store      session.Store

	csrfMu    sync.Mutex
	csrfToken string
}

func NewClient(baseURL string, store session.Store, logger *logrus.Logger, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}

	// Credentialed-cookie semantics: the backend may authenticate via a
	// session cookie in addition to the bearer token.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Logger:  logger,
		baseURL: parsed,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		store: store,
	}, nil
}

// Do issues an authenticated request. Non-2xx responses never reach the
// caller: a 401 clears the session store and returns ErrSessionExpired,
// anything else returns RequestError. The returned response body is the
// caller's to close.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	return c.do(ctx, method, path, body, true, nil)
}

// DoPublic issues a request without the Authorization header (login,
// register, CSRF bootstrap). Extra headers are attached verbatim.
func (c *Client) DoPublic(ctx context.Context, method, path string, body interface{}, headers http.Header) (*http.Response, error) {
	return c.do(ctx, method, path, body, false, headers)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, authenticated bool, headers http.Header) (*http.Response, error) {
	logData := logging.NewLogData(c.Logger)
	requestID := uuid.Must(uuid.NewV4())
	logData.AddData("requestID", requestID.String())
	logData.AddData("method", method)
	logData.AddData("path", strippedPath(path))

	req, err := c.newRequest(ctx, method, path, body, authenticated, headers)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("durationMs")
	var stopParentTimer func()
	if parent := logging.GetLogData(ctx); parent != nil {
		stopParentTimer = parent.AddToExistingTiming("gatewayMs")
	}
	resp, err := c.httpClient.Do(req)
	stopTimer()
	if stopParentTimer != nil {
		stopParentTimer()
	}
	if err != nil {
		logData.Log().WithError(err).Error("Gateway.Do.transport error")
		return nil, fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	logData.AddData("status", resp.StatusCode)

	if authenticated && resp.StatusCode == http.StatusUnauthorized {
		drainAndClose(resp.Body)
		// Concurrent 401s all land here; Clear is idempotent so the
		// redundant transitions are safe.
		if clearErr := c.store.Clear(); clearErr != nil {
			logData.Log().WithError(clearErr).Error("Gateway.Do.session clear failed")
		}
		logData.Log().Warn("Gateway.Do.session expired")
		return nil, ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drainAndClose(resp.Body)
		logData.Log().Warn("Gateway.Do.request failed")
		return nil, &RequestError{Status: resp.StatusCode}
	}

	logData.Log().Info("Gateway.Do.complete")
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}, authenticated bool, headers http.Header) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authenticated {
		if current, ok := c.store.Current(); ok {
			req.Header.Set("Authorization", current.Token)
		}
	}

	if isMutating(method) {
		token, err := c.ensureCSRFToken(ctx)
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.Header.Set(csrfHeader, token)
		}
	}

	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	return req, nil
}

// CSRFToken returns the cached token, bootstrapping it on first use.
// Must succeed before the first mutating request of a session; an empty
// token means the backend does not use CSRF protection.
func (c *Client) CSRFToken(ctx context.Context) (string, error) {
	return c.ensureCSRFToken(ctx)
}

func (c *Client) ensureCSRFToken(ctx context.Context) (string, error) {
	c.csrfMu.Lock()
	defer c.csrfMu.Unlock()

	if c.csrfToken != "" {
		return c.csrfToken, nil
	}

	if token := c.csrfTokenFromJar(); token != "" {
		c.csrfToken = token
		return token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(csrfBootstrapPath), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway: csrf bootstrap: %w", err)
	}
	drainAndClose(resp.Body)

	c.csrfToken = c.csrfTokenFromJar()
	return c.csrfToken, nil
}

func (c *Client) csrfTokenFromJar() string {
	for _, cookie := range c.httpClient.Jar.Cookies(c.baseURL) {
		for _, name := range csrfCookieNames {
			if cookie.Name == name {
				return cookie.Value
			}
		}
	}
	return ""
}

func (c *Client) resolve(path string) string {
	return strings.TrimRight(c.baseURL.String(), "/") + "/" + strings.TrimLeft(path, "/")
}

// DecodeJSON decodes a 2xx response body into out and closes it.
func DecodeJSON(resp *http.Response, out interface{}) error {
	defer drainAndClose(resp.Body)
	return json.NewDecoder(resp.Body).Decode(out)
}

// Discard closes a response whose body the caller does not need.
func Discard(resp *http.Response) {
	drainAndClose(resp.Body)
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func strippedPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
