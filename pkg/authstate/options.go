package authstate

import "log/slog"

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for auth operation outcomes.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithLoginPath overrides the route sign-out navigates to.
func WithLoginPath(path string) Option {
	return func(s *Store) {
		if path != "" {
			s.loginPath = path
		}
	}
}

// WithLandingRoute overrides the role-to-landing-route mapping applied after
// a successful authentication.
func WithLandingRoute(fn func(role string) string) Option {
	return func(s *Store) {
		if fn != nil {
			s.landing = fn
		}
	}
}

// WithSubscriberBuffer sets the channel buffer for Subscribe. Snapshots are
// dropped, not blocked on, when a subscriber falls behind.
func WithSubscriberBuffer(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.subBuffer = n
		}
	}
}
