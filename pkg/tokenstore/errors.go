package tokenstore

import "errors"

var (
	// ErrMissingStorage indicates no storage backend was provided
	ErrMissingStorage = errors.New("tokenstore: missing storage")

	// ErrMissingKey indicates no encryption key was provided
	ErrMissingKey = errors.New("tokenstore: missing encryption key")

	// ErrEmptyToken indicates an attempt to persist an empty token
	ErrEmptyToken = errors.New("tokenstore: empty token")
)
