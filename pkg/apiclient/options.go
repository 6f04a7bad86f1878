package apiclient

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every outgoing request. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTokenSource attaches the credential source used for the Authorization
// header and for forced logout on 401.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		if ts != nil {
			c.tokens = ts
		}
	}
}

// WithNavigator attaches the navigator used to redirect to the login route
// after a 401. Without a navigator the credential is still cleared but no
// redirect is issued.
func WithNavigator(nav Navigator) Option {
	return func(c *Client) {
		if nav != nil {
			c.nav = nav
		}
	}
}

// WithLoginPath overrides the login route used for 401 redirects.
func WithLoginPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.loginPath = path
		}
	}
}

// WithLogger sets the logger used by the response classifier.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithConnectivityProbe sets the probe consulted when a request fails with no
// response, to distinguish "offline" from other network failures.
func WithConnectivityProbe(online func() bool) Option {
	return func(c *Client) {
		if online != nil {
			c.online = online
		}
	}
}

// WithHTTPClient replaces the underlying http.Client. The configured timeout
// is still applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithClock overrides the time source used for the X-Timestamp header.
// Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}
