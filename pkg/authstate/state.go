package authstate

// Phase is the logical authentication state of the client.
type Phase string

const (
	// PhaseUnauthenticated means no credential is held.
	PhaseUnauthenticated Phase = "unauthenticated"
	// PhaseAuthenticating means an auth network call is in flight.
	PhaseAuthenticating Phase = "authenticating"
	// PhaseAuthenticated means both credential and user record are present.
	PhaseAuthenticated Phase = "authenticated"
)

// User is the account record returned by the backend after a successful
// authentication or verification. Role is a plain string compared against
// route requirements; there is no richer permission model.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
}

// State is an immutable snapshot of the session. Token is read live from the
// token store at snapshot time, so it can be empty while User is still set
// for a moment after a forced logout, and a token can exist before the user
// record is fetched. IsAuthenticated depends on the token alone.
type State struct {
	Token   string
	User    *User
	Loading bool
	Err     error
}

// IsAuthenticated reports whether a credential is held. This is the check
// route policies run against; a fetched user record is not required.
func (s State) IsAuthenticated() bool {
	return s.Token != ""
}

// Role returns the current user's role, or "" when no user record is loaded.
func (s State) Role() string {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Phase derives the logical state: Authenticating while a call is in flight,
// Authenticated once both token and user are present, Unauthenticated
// otherwise.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseAuthenticating
	case s.Token != "" && s.User != nil:
		return PhaseAuthenticated
	default:
		return PhaseUnauthenticated
	}
}
