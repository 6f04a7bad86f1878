package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/notification"
)

// DefaultTimeout bounds every request unless overridden.
const DefaultTimeout = 10 * time.Second

// DefaultLoginPath is the route 401 redirects target unless overridden.
const DefaultLoginPath = "/sign-in"

// TokenSource supplies the current bearer credential and supports clearing it
// when the backend rejects it. tokenstore.Store satisfies this interface.
type TokenSource interface {
	Token() (string, bool)
	RemoveToken()
}

// Navigator performs client-side route transitions. router.Router satisfies
// this interface.
type Navigator interface {
	CurrentPath() string
	Push(path string, query url.Values)
}

// Client is the single shared request client. Every outgoing request gets the
// bearer credential and the anti-replay/anti-CSRF headers attached; every
// failed response is classified by status code in one place, so 401-triggered
// logout never leaks into call sites.
type Client struct {
	http      *http.Client
	baseURL   string
	timeout   time.Duration
	tokens    TokenSource
	nav       Navigator
	loginPath string
	log       *slog.Logger
	online    func() bool
	now       func() time.Time
}

// New creates a Client for the given base URL. A cookie jar is always
// installed so endpoints relying on server-set cookies keep working.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("apiclient: invalid base URL %q: %w", baseURL, err)
	}

	c := &Client{
		baseURL:   baseURL,
		timeout:   DefaultTimeout,
		loginPath: DefaultLoginPath,
		log:       slog.Default(),
		online:    func() bool { return true },
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("apiclient: cookie jar: %w", err)
		}
		c.http = &http.Client{Jar: jar}
	}
	c.http.Timeout = c.timeout

	return c, nil
}

// Get issues a GET request and decodes the JSON response into out (may be nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the JSON response
// into out (may be nil).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Do issues a request against the configured backend. On failure the returned
// error is always a classified *Error wrapping one of the package sentinels;
// classification side effects (401 logout, logging) happen before the error
// reaches the caller.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}

	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return c.classifyTransport(req, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.classifyResponse(req, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return newError(ErrInvalidResponse, resp.StatusCode, "", err)
		}
	}

	return nil
}

// decorate is the outgoing interceptor: bearer credential when present, a
// wall-clock millisecond timestamp on non-GET requests, and the fixed default
// headers every request carries.
func (c *Client) decorate(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	if req.Method != http.MethodGet {
		req.Header.Set("X-Timestamp", strconv.FormatInt(c.now().UnixMilli(), 10))
	}
}

// classifyTransport handles failures where no HTTP response was received.
// The connectivity probe is consulted first: an offline client is reported as
// offline no matter how the request died, timeouts included.
func (c *Client) classifyTransport(req *http.Request, err error) error {
	var netErr net.Error
	switch {
	case !c.online():
		c.log.Error("request failed while offline", slog.String("method", req.Method), slog.String("path", req.URL.Path))
		return newError(ErrOffline, 0, "", err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		c.log.Error("request timed out", slog.String("method", req.Method), slog.String("path", req.URL.Path))
		return newError(ErrTimeout, 0, "", err)
	default:
		c.log.Error("network error", slog.String("method", req.Method), slog.String("path", req.URL.Path), slog.Any("error", err))
		return newError(ErrNetwork, 0, "", err)
	}
}

// classifyResponse is the incoming interceptor for error statuses. Only the
// 401 branch mutates state; every other class is observed and re-raised,
// leaving business-specific handling to the caller.
func (c *Client) classifyResponse(req *http.Request, resp *http.Response) error {
	message := serverMessage(resp)
	status := resp.StatusCode

	attrs := []any{
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", status),
	}

	switch status {
	case http.StatusUnauthorized:
		c.forceLogout()
		return newError(ErrUnauthorized, status, message, nil)
	case http.StatusForbidden:
		c.log.Warn("access forbidden", attrs...)
		return newError(ErrForbidden, status, message, nil)
	case http.StatusNotFound:
		c.log.Warn("resource not found", attrs...)
		return newError(ErrNotFound, status, message, nil)
	case http.StatusUnprocessableEntity:
		c.log.Warn("validation rejected by server", append(attrs, slog.String("message", message))...)
		return newError(ErrValidation, status, message, nil)
	case http.StatusTooManyRequests:
		c.log.Warn("rate limited", attrs...)
		return newError(ErrRateLimited, status, message, nil)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		c.log.Error("server error", attrs...)
		return newError(ErrServer, status, message, nil)
	default:
		c.log.Warn("request failed", attrs...)
		return newError(ErrServer, status, message, nil)
	}
}

// forceLogout clears the stored credential and, unless the client is already
// on the login route, issues exactly one redirect to it carrying the
// token-invalid notification. The credential is removed before navigating, so
// any guard running during the nested transition already sees an
// unauthenticated session and does not re-enter verification.
func (c *Client) forceLogout() {
	if c.tokens != nil {
		c.tokens.RemoveToken()
	}

	if c.nav == nil || c.nav.CurrentPath() == c.loginPath {
		return
	}

	query := url.Values{}
	if payload, ok := notification.Predefined(notification.CodeTokenInvalid); ok {
		query.Set("notification", payload.Code)
		query.Set("notificationType", string(payload.Type))
	}
	c.nav.Push(c.loginPath, query)
}

// serverMessage extracts the conventional {"message": "..."} payload from an
// error response body, tolerating anything else.
func serverMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
