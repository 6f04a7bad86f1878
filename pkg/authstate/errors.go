package authstate

import "errors"

var (
	// ErrInvalidEmail indicates a client-side email format rejection;
	// no network call was made
	ErrInvalidEmail = errors.New("authstate: invalid email address")

	// ErrPasswordTooShort indicates a client-side password length rejection;
	// no network call was made
	ErrPasswordTooShort = errors.New("authstate: password must be at least 8 characters")

	// ErrInvalidServerResponse indicates an auth success payload missing the
	// access token or the user record
	ErrInvalidServerResponse = errors.New("authstate: invalid server response")

	// ErrMissingAPI indicates no API client was provided
	ErrMissingAPI = errors.New("authstate: missing api client")

	// ErrMissingTokens indicates no token store was provided
	ErrMissingTokens = errors.New("authstate: missing token store")
)
