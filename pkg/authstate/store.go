package authstate

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/authkit/pkg/apiclient"
	"github.com/dmitrymomot/authkit/pkg/notification"
	"github.com/dmitrymomot/authkit/pkg/sanitizer"
)

// MinPasswordLength is the client-side lower bound checked before any
// registration request is sent.
const MinPasswordLength = 8

// Auth endpoints on the backend.
const (
	registerPath = "/auth/register"
	loginPath    = "/auth/login"
	verifyPath   = "/auth/verify"
)

// API is the slice of the HTTP client the store needs.
type API interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// Tokens is the slice of the secure token store the store needs.
type Tokens interface {
	SetToken(token string) error
	Token() (string, bool)
	RemoveToken()
}

// Navigator performs client-side route transitions after auth events.
type Navigator interface {
	Push(path string, query url.Values)
}

// Store owns the process-wide session state: user record, loading flag and
// last error. The credential itself lives only in the token store; Snapshot
// reads it live, so a credential cleared elsewhere (the HTTP client's forced
// logout on 401) is visible to the very next Snapshot without any Store call
// in between. It is an explicitly constructed object; the guard, the HTTP
// client and any UI receive it by reference, never through a package-level
// singleton.
//
// Concurrent calls to the same auth operation coalesce into a single flight;
// the joined callers observe the leader's result. This removes the
// last-writer-wins race a naive implementation has when two sign-in calls
// overlap.
type Store struct {
	api       API
	tokens    Tokens
	nav       Navigator
	log       *slog.Logger
	landing   func(role string) string
	loginPath string
	subBuffer int

	flight singleflight.Group

	mu        sync.RWMutex
	state     State
	subs      map[uint64]chan State
	nextSubID uint64
}

// authPayload is the success body shared by the register and login endpoints.
type authPayload struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// New creates a Store. Any valid persisted credential is visible immediately,
// so a restarted client resumes its session; the user record stays empty
// until VerifyToken fetches it.
func New(api API, tokens Tokens, nav Navigator, opts ...Option) (*Store, error) {
	if api == nil {
		return nil, ErrMissingAPI
	}
	if tokens == nil {
		return nil, ErrMissingTokens
	}

	s := &Store{
		api:       api,
		tokens:    tokens,
		nav:       nav,
		log:       slog.Default(),
		landing:   defaultLanding,
		loginPath: "/sign-in",
		subBuffer: 8,
		subs:      make(map[uint64]chan State),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Snapshot returns the current session state. The credential is read from the
// token store on every call rather than cached.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// snapshotLocked composes the externally visible state: the in-memory fields
// plus the live credential. Callers must hold s.mu.
func (s *Store) snapshotLocked() State {
	st := s.state
	st.Token = ""
	if token, ok := s.tokens.Token(); ok {
		st.Token = token
	}
	return st
}

// Subscribe returns a channel delivering a state snapshot after every
// mutation. The subscription ends when ctx is done. Slow subscribers miss
// snapshots instead of blocking mutations.
func (s *Store) Subscribe(ctx context.Context) <-chan State {
	ch := make(chan State, s.subBuffer)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// SignUp registers a new account. Name and email are sanitized (email also
// lowercased); the password is validated but passed through unmodified so
// user-chosen characters survive. Validation failures return before any
// network call. Concurrent SignUp calls join the in-flight one.
func (s *Store) SignUp(ctx context.Context, name, email, password, role string) error {
	_, err, _ := s.flight.Do("sign-up", func() (any, error) {
		return nil, s.signUp(ctx, name, email, password, role)
	})
	return err
}

func (s *Store) signUp(ctx context.Context, name, email, password, role string) error {
	s.begin()
	defer s.finish()

	name = sanitizer.Sanitize(name)
	email = sanitizer.Email(email)

	if !strings.Contains(email, "@") {
		return s.fail(ErrInvalidEmail)
	}
	if len(password) < MinPasswordLength {
		return s.fail(ErrPasswordTooShort)
	}

	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	}

	var payload authPayload
	if err := s.api.Post(ctx, registerPath, body, &payload); err != nil {
		s.log.Warn("sign-up failed", slog.Any("error", err))
		return s.fail(err)
	}

	return s.handleAuthSuccess(payload, notification.CodeRegistrationSuccess)
}

// SignIn authenticates an existing account. Only the email is sanitized and
// lowercased. Concurrent SignIn calls join the in-flight one.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	_, err, _ := s.flight.Do("sign-in", func() (any, error) {
		return nil, s.signIn(ctx, email, password)
	})
	return err
}

func (s *Store) signIn(ctx context.Context, email, password string) error {
	s.begin()
	defer s.finish()

	body := map[string]string{
		"email":    sanitizer.Email(email),
		"password": password,
	}

	var payload authPayload
	if err := s.api.Post(ctx, loginPath, body, &payload); err != nil {
		s.log.Warn("sign-in failed", slog.Any("error", err))
		return s.fail(err)
	}

	return s.handleAuthSuccess(payload, notification.CodeLoginSuccess)
}

// VerifyToken checks the held credential against the backend. It returns
// false without a network call when no credential is held. Any verification
// failure clears the session; navigating afterwards is the caller's concern,
// so the route guard can attach its own notification to the redirect.
// Concurrent calls join the in-flight one.
func (s *Store) VerifyToken(ctx context.Context) bool {
	ok, _, _ := s.flight.Do("verify", func() (any, error) {
		return s.verifyToken(ctx), nil
	})
	return ok.(bool)
}

func (s *Store) verifyToken(ctx context.Context) bool {
	if !s.Snapshot().IsAuthenticated() {
		return false
	}

	var payload struct {
		User *User `json:"user"`
	}
	if err := s.api.Get(ctx, verifyPath, &payload); err != nil || payload.User == nil {
		s.log.Info("token verification failed, clearing session", slog.Any("error", err))
		s.clearSession()
		return false
	}

	s.mutate(func(st *State) {
		st.User = payload.User
	})
	return true
}

// SignOut clears the session and the persisted credential, then navigates to
// the login route with the logout notification. Idempotent.
func (s *Store) SignOut() {
	s.clearSession()

	if s.nav != nil {
		s.nav.Push(s.loginPath, notificationQuery(notification.CodeLogoutSuccess))
	}
}

// clearSession drops the persisted credential and the in-memory session
// without navigating. Forced sign-outs (failed verification, rejected token)
// use it so the only notification reaching the login route is the one
// attached by whoever redirects there.
func (s *Store) clearSession() {
	s.tokens.RemoveToken()
	s.mutate(func(st *State) {
		st.User = nil
		st.Err = nil
	})
}

// ClearError resets the last operation error without touching the rest of
// the state.
func (s *Store) ClearError() {
	s.mutate(func(st *State) {
		st.Err = nil
	})
}

// handleAuthSuccess is the shared tail of SignUp and SignIn. The payload must
// carry both the access token and the user record; otherwise the state is
// left untouched apart from the error, and ErrInvalidServerResponse is
// returned.
func (s *Store) handleAuthSuccess(payload authPayload, successCode string) error {
	if payload.AccessToken == "" || payload.User == nil {
		return s.fail(ErrInvalidServerResponse)
	}

	if err := s.tokens.SetToken(payload.AccessToken); err != nil {
		return s.fail(err)
	}

	s.mutate(func(st *State) {
		st.User = payload.User
		st.Err = nil
	})

	if s.nav != nil {
		s.nav.Push(s.landing(payload.User.Role), notificationQuery(successCode))
	}

	return nil
}

// begin marks the start of an auth operation: loading on, previous error
// cleared.
func (s *Store) begin() {
	s.mutate(func(st *State) {
		st.Loading = true
		st.Err = nil
	})
}

// finish clears the loading flag regardless of outcome.
func (s *Store) finish() {
	s.mutate(func(st *State) {
		st.Loading = false
	})
}

// fail records err on the state and returns it for the caller.
func (s *Store) fail(err error) error {
	s.mutate(func(st *State) {
		st.Err = err
	})
	return err
}

// mutate applies fn to the state under lock and fans the new snapshot out to
// subscribers. Sends are non-blocking; a full subscriber buffer drops the
// snapshot.
func (s *Store) mutate(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)
	snapshot := s.snapshotLocked()

	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// defaultLanding maps a role to its post-auth landing route.
func defaultLanding(role string) string {
	if role == "manager" {
		return "/dashboard/manager"
	}
	return "/dashboard"
}

// notificationQuery builds the redirect query for a predefined notification
// code.
func notificationQuery(code string) url.Values {
	query := url.Values{}
	if payload, ok := notification.Predefined(code); ok {
		query.Set("notification", payload.Code)
		query.Set("notificationType", string(payload.Type))
	}
	return query
}

// IsValidationError reports whether err belongs to the validation class:
// either a client-side pre-flight rejection or a 422 from the server. Useful
// for surfacing the failure as a form error rather than a toast.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, apiclient.ErrValidation)
}
