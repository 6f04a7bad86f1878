package tokenstore

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrymomot/authkit/pkg/secrets"
)

// DefaultStorageKey is the storage slot the encrypted credential lives under.
const DefaultStorageKey = "_t"

// Option configures a Store.
type Option func(*Store)

// WithStorageKey overrides the storage slot used for the credential.
func WithStorageKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.storageKey = key
		}
	}
}

// WithClock overrides the time source used for expiry checks. Intended for
// tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store keeps a single bearer token encrypted at rest in ephemeral storage.
//
// Reads validate the token's embedded expiry claim; a value that fails to
// decrypt, fails to decode, or has expired is treated as absent. Callers must
// treat "no token" and "invalid token" identically; the distinction is never
// surfaced.
type Store struct {
	storage    Storage
	key        []byte
	storageKey string
	now        func() time.Time
}

// New creates a Store over the given storage backend and 32-byte encryption
// key.
func New(storage Storage, encryptionKey []byte, opts ...Option) (*Store, error) {
	if storage == nil {
		return nil, ErrMissingStorage
	}
	if err := secrets.ValidateKey(encryptionKey); err != nil {
		return nil, err
	}

	s := &Store{
		storage:    storage,
		key:        encryptionKey,
		storageKey: DefaultStorageKey,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// SetToken encrypts token and writes the ciphertext to storage, overwriting
// any previously stored value.
func (s *Store) SetToken(token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	ciphertext, err := secrets.EncryptString(s.key, token)
	if err != nil {
		return err
	}

	s.storage.Set(s.storageKey, ciphertext)
	return nil
}

// Token returns the stored plaintext token. The second return value is false
// when no valid token is present: nothing stored, ciphertext corrupted or
// foreign, expiry claim unreadable, or expiry at or before the current time.
// An expired credential is deleted from storage as a side effect.
func (s *Store) Token() (string, bool) {
	ciphertext, ok := s.storage.Get(s.storageKey)
	if !ok {
		return "", false
	}

	token, err := secrets.DecryptString(s.key, ciphertext)
	if err != nil {
		// Corrupted or foreign data degrades to absent, never to an error.
		return "", false
	}

	if !s.valid(token) {
		s.storage.Delete(s.storageKey)
		return "", false
	}

	return token, true
}

// RemoveToken deletes the stored ciphertext unconditionally. Idempotent.
func (s *Store) RemoveToken() {
	s.storage.Delete(s.storageKey)
}

// valid reports whether the token carries an expiry claim strictly in the
// future. The signature is deliberately not verified: the client holds no
// signing key, and the check is a fast-fail optimization, not a security
// boundary; the backend validates every token independently.
func (s *Store) valid(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.After(s.now())
}
