package router

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
)

// maxRedirectHops bounds guard-driven redirect chains. Legitimate chains are
// short (alias hop plus at most one guard redirect); anything longer is a
// policy misconfiguration.
const maxRedirectHops = 10

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger for navigation outcomes.
func WithLogger(log *slog.Logger) Option {
	return func(r *Router) {
		if log != nil {
			r.log = log
		}
	}
}

// WithNotFound overrides the catch-all route returned for unknown paths.
func WithNotFound(route Route) Option {
	return func(r *Router) {
		r.notFound = route
	}
}

// WithSubscriberBuffer sets the channel buffer for Subscribe.
func WithSubscriberBuffer(n int) Option {
	return func(r *Router) {
		if n > 0 {
			r.subBuffer = n
		}
	}
}

// Router is an in-process navigation engine: a static route table, a guard
// chain run before every transition, and the current location. It satisfies
// the Navigator interfaces of both apiclient and authstate.
type Router struct {
	log       *slog.Logger
	routes    map[string]Route
	notFound  Route
	subBuffer int

	guardMu sync.RWMutex
	guards  []Guard

	mu        sync.RWMutex
	current   Location
	subs      map[uint64]chan Location
	nextSubID uint64
}

// New creates a Router over the given route table.
func New(routes []Route, opts ...Option) (*Router, error) {
	if len(routes) == 0 {
		return nil, ErrNoRoutes
	}

	r := &Router{
		log:       slog.Default(),
		routes:    make(map[string]Route, len(routes)),
		notFound:  Route{Path: "/not-found", Name: "not-found"},
		subBuffer: 8,
		subs:      make(map[uint64]chan Location),
	}

	for _, route := range routes {
		if _, exists := r.routes[route.Path]; exists {
			return nil, ErrDuplicateRoute
		}
		r.routes[route.Path] = route
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Use appends a guard to the chain. Guards run in registration order; the
// first redirect wins.
func (r *Router) Use(guards ...Guard) {
	r.guardMu.Lock()
	defer r.guardMu.Unlock()
	for _, g := range guards {
		if g != nil {
			r.guards = append(r.guards, g)
		}
	}
}

// Match resolves a path against the route table, falling back to the
// catch-all not-found route.
func (r *Router) Match(path string) Route {
	if route, ok := r.routes[path]; ok {
		return route
	}
	return r.notFound
}

// Current returns the last committed location.
func (r *Router) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// CurrentPath returns the path of the last committed location.
func (r *Router) CurrentPath() string {
	return r.Current().Path
}

// Navigate runs the guard chain against the target and commits the resulting
// location: the target itself, or wherever the guards redirected.
func (r *Router) Navigate(ctx context.Context, path string) error {
	return r.navigate(ctx, path, nil)
}

// Push is the fire-and-forget navigation used by collaborators (forced
// logout, post-auth landing). Failures are logged, not returned.
func (r *Router) Push(path string, query url.Values) {
	if err := r.navigate(context.Background(), path, query); err != nil {
		r.log.Error("navigation failed", slog.String("path", path), slog.Any("error", err))
	}
}

// Subscribe returns a channel delivering every committed location until ctx
// is done. Slow subscribers miss transitions instead of blocking navigation.
func (r *Router) Subscribe(ctx context.Context) <-chan Location {
	ch := make(chan Location, r.subBuffer)

	r.mu.Lock()
	id := r.nextSubID
	r.nextSubID++
	r.subs[id] = ch
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		delete(r.subs, id)
		close(ch)
		r.mu.Unlock()
	}()

	return ch
}

func (r *Router) navigate(ctx context.Context, path string, query url.Values) error {
	for hop := 0; hop < maxRedirectHops; hop++ {
		route := r.Match(path)

		if route.Redirect != "" {
			path, query = route.Redirect, nil
			continue
		}

		if redirect, redirectQuery, ok := r.runGuards(ctx, route); ok {
			r.log.Info("transition redirected",
				slog.String("from", path),
				slog.String("to", redirect),
			)
			path, query = redirect, redirectQuery
			continue
		}

		r.commit(Location{Route: route, Path: path, Query: query})
		return nil
	}

	r.log.Error("redirect loop", slog.String("path", path))
	return ErrRedirectLoop
}

// runGuards executes the chain against the target route. The first redirect
// short-circuits the rest; ok reports whether a redirect fired.
func (r *Router) runGuards(ctx context.Context, to Route) (path string, query url.Values, ok bool) {
	r.guardMu.RLock()
	guards := r.guards
	r.guardMu.RUnlock()

	for _, guard := range guards {
		if decision := guard(ctx, to); !decision.Allowed {
			return decision.RedirectPath, decision.Query, true
		}
	}
	return "", nil, false
}

// commit stores the location and fans it out to subscribers.
func (r *Router) commit(loc Location) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = loc

	for _, ch := range r.subs {
		select {
		case ch <- loc:
		default:
		}
	}
}
