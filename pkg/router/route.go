package router

import "net/url"

// Policy is the static authorization metadata attached to a route. It is
// declared once at registration and only ever read by guards.
type Policy struct {
	// RequiresAuth restricts the route to authenticated sessions.
	RequiresAuth bool
	// GuestOnly restricts the route to unauthenticated sessions.
	GuestOnly bool
	// Roles, when non-empty, is the allow-list of roles admitted to the
	// route. Checked only for authenticated sessions.
	Roles []string
}

// Route is a named client-side destination with its authorization policy.
type Route struct {
	Path   string
	Name   string
	Policy Policy

	// Redirect, when set, makes the route an alias: navigation re-targets
	// to the given path before any guard runs.
	Redirect string
}

// Location is a committed navigation: the matched route plus the concrete
// path and query it was reached with.
type Location struct {
	Route Route
	Path  string
	Query url.Values
}

// Decision is a guard verdict: either allow the transition or redirect it.
type Decision struct {
	Allowed      bool
	RedirectPath string
	Query        url.Values
}

// Allow admits the transition.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Redirect rejects the transition in favor of another path. A redirect is
// hard: no later guard or rule applies after it fires.
func Redirect(path string, query url.Values) Decision {
	return Decision{RedirectPath: path, Query: query}
}

// DefaultRoutes returns the standard route surface of the application:
// guest-only auth pages, role-gated dashboards, and the public error pages.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Name: "home", Redirect: "/dashboard"},
		{Path: "/sign-in", Name: "sign-in", Policy: Policy{GuestOnly: true}},
		{Path: "/sign-up", Name: "sign-up", Policy: Policy{GuestOnly: true}},
		{Path: "/dashboard", Name: "dashboard", Policy: Policy{RequiresAuth: true, Roles: []string{"user", "manager"}}},
		{Path: "/dashboard/manager", Name: "manager-dashboard", Policy: Policy{RequiresAuth: true, Roles: []string{"manager"}}},
		{Path: "/profile", Name: "profile", Policy: Policy{RequiresAuth: true}},
		{Path: "/unauthorized", Name: "unauthorized"},
	}
}
