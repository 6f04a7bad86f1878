package router

import (
	"context"
	"net/url"
	"slices"

	"github.com/dmitrymomot/authkit/pkg/authstate"
	"github.com/dmitrymomot/authkit/pkg/notification"
)

// Guard inspects a target route before the transition commits and either
// allows it or redirects it elsewhere.
type Guard func(ctx context.Context, to Route) Decision

// SessionSource is the slice of the session store the auth guard needs.
// VerifyToken must leave the session unauthenticated when it returns false.
// authstate.Store satisfies this interface.
type SessionSource interface {
	Snapshot() authstate.State
	VerifyToken(ctx context.Context) bool
}

// GuardOption configures AuthGuard.
type GuardOption func(*guardConfig)

// WithGuardLoginPath overrides the login route unauthenticated sessions are
// redirected to.
func WithGuardLoginPath(path string) GuardOption {
	return func(c *guardConfig) {
		if path != "" {
			c.loginPath = path
		}
	}
}

// WithGuardLandingPath overrides the route authenticated sessions are sent
// to from guest-only pages.
func WithGuardLandingPath(path string) GuardOption {
	return func(c *guardConfig) {
		if path != "" {
			c.landingPath = path
		}
	}
}

// WithGuardUnauthorizedPath overrides the route role mismatches are sent to.
func WithGuardUnauthorizedPath(path string) GuardOption {
	return func(c *guardConfig) {
		if path != "" {
			c.unauthorizedPath = path
		}
	}
}

type guardConfig struct {
	loginPath        string
	landingPath      string
	unauthorizedPath string
}

// AuthGuard builds the authentication/authorization guard run before every
// transition:
//
//  1. A held credential is re-verified against the backend; a failed
//     verification clears the session, and a target that requires
//     authentication redirects to login immediately.
//  2. Authentication state and role are re-read after that possible
//     mutation.
//  3. Auth-required target without a session redirects to login.
//  4. Guest-only target with a session redirects to the landing route.
//  5. A role allow-list without a matching session role redirects to the
//     unauthorized route.
//  6. Otherwise the transition is allowed.
//
// Every redirect is hard: later rules never apply after an earlier one
// fires.
func AuthGuard(session SessionSource, opts ...GuardOption) Guard {
	cfg := guardConfig{
		loginPath:        "/sign-in",
		landingPath:      "/dashboard",
		unauthorizedPath: "/unauthorized",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx context.Context, to Route) Decision {
		if session.Snapshot().IsAuthenticated() {
			if !session.VerifyToken(ctx) && to.Policy.RequiresAuth {
				return Redirect(cfg.loginPath, loginRequiredQuery())
			}
		}

		state := session.Snapshot()
		authenticated := state.IsAuthenticated()
		role := state.Role()

		if to.Policy.RequiresAuth && !authenticated {
			return Redirect(cfg.loginPath, loginRequiredQuery())
		}

		if to.Policy.GuestOnly && authenticated {
			return Redirect(cfg.landingPath, nil)
		}

		if len(to.Policy.Roles) > 0 && authenticated {
			if role == "" || !slices.Contains(to.Policy.Roles, role) {
				return Redirect(cfg.unauthorizedPath, nil)
			}
		}

		return Allow()
	}
}

func loginRequiredQuery() url.Values {
	query := url.Values{}
	if payload, ok := notification.Predefined(notification.CodeLoginRequired); ok {
		query.Set("notification", payload.Code)
		query.Set("notificationType", string(payload.Type))
	}
	return query
}
