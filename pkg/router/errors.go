package router

import "errors"

var (
	// ErrNoRoutes indicates construction without any route
	ErrNoRoutes = errors.New("router: no routes registered")

	// ErrDuplicateRoute indicates two routes registered for the same path
	ErrDuplicateRoute = errors.New("router: duplicate route path")

	// ErrRedirectLoop indicates guards kept redirecting past the hop limit
	ErrRedirectLoop = errors.New("router: redirect loop detected")
)
