package tokenstore_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/secrets"
	"github.com/dmitrymomot/authkit/pkg/tokenstore"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-only-secret"))
	require.NoError(t, err)
	return token
}

func tokenWithoutExpiry(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "42"}).
		SignedString([]byte("backend-only-secret"))
	require.NoError(t, err)
	return token
}

func newStore(t *testing.T, opts ...tokenstore.Option) (*tokenstore.Store, *tokenstore.MemoryStorage) {
	t.Helper()
	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	storage := tokenstore.NewMemoryStorage()
	store, err := tokenstore.New(storage, key, opts...)
	require.NoError(t, err)
	return store, storage
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("missing storage", func(t *testing.T) {
		t.Parallel()
		key, err := secrets.GenerateKey()
		require.NoError(t, err)
		_, err = tokenstore.New(nil, key)
		require.ErrorIs(t, err, tokenstore.ErrMissingStorage)
	})

	t.Run("bad key", func(t *testing.T) {
		t.Parallel()
		_, err := tokenstore.New(tokenstore.NewMemoryStorage(), []byte("short"))
		require.ErrorIs(t, err, secrets.ErrInvalidKey)
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	store, storage := newStore(t)

	token := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.SetToken(token))

	// Value at rest must be ciphertext, not the bearer token itself.
	raw, ok := storage.Get(tokenstore.DefaultStorageKey)
	require.True(t, ok)
	assert.NotEqual(t, token, raw)
	assert.NotContains(t, raw, ".")

	got, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, token, got)
}

func TestTokenAbsent(t *testing.T) {
	t.Parallel()

	t.Run("nothing stored", func(t *testing.T) {
		t.Parallel()
		store, _ := newStore(t)
		got, ok := store.Token()
		assert.False(t, ok)
		assert.Empty(t, got)
	})

	t.Run("foreign ciphertext", func(t *testing.T) {
		t.Parallel()
		store, storage := newStore(t)
		storage.Set(tokenstore.DefaultStorageKey, "bm90IGEgcmVhbCBjaXBoZXJ0ZXh0IGF0IGFsbA==")
		got, ok := store.Token()
		assert.False(t, ok)
		assert.Empty(t, got)
	})

	t.Run("plaintext garbage", func(t *testing.T) {
		t.Parallel()
		store, storage := newStore(t)
		storage.Set(tokenstore.DefaultStorageKey, "%%% not even base64 %%%")
		_, ok := store.Token()
		assert.False(t, ok)
	})

	t.Run("not a jwt", func(t *testing.T) {
		t.Parallel()
		store, storage := newStore(t)
		require.NoError(t, store.SetToken("opaque-but-not-a-jwt"))
		_, ok := store.Token()
		assert.False(t, ok)
		// Invalid credential is dropped from storage.
		_, present := storage.Get(tokenstore.DefaultStorageKey)
		assert.False(t, present)
	})

	t.Run("no expiry claim", func(t *testing.T) {
		t.Parallel()
		store, _ := newStore(t)
		require.NoError(t, store.SetToken(tokenWithoutExpiry(t)))
		_, ok := store.Token()
		assert.False(t, ok)
	})
}

func TestExpiredTokenDeleted(t *testing.T) {
	t.Parallel()
	store, storage := newStore(t)

	require.NoError(t, store.SetToken(signedToken(t, time.Now().Add(-time.Minute))))

	got, ok := store.Token()
	assert.False(t, ok)
	assert.Empty(t, got)

	// The stored ciphertext is deleted as a side effect of the failed read.
	_, present := storage.Get(tokenstore.DefaultStorageKey)
	assert.False(t, present)
}

func TestExpiryBoundary(t *testing.T) {
	t.Parallel()

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, expiry)

	t.Run("exactly at expiry is absent", func(t *testing.T) {
		t.Parallel()
		store, _ := newStore(t, tokenstore.WithClock(func() time.Time { return expiry }))
		require.NoError(t, store.SetToken(token))
		_, ok := store.Token()
		assert.False(t, ok)
	})

	t.Run("one second before expiry is present", func(t *testing.T) {
		t.Parallel()
		store, _ := newStore(t, tokenstore.WithClock(func() time.Time { return expiry.Add(-time.Second) }))
		require.NoError(t, store.SetToken(token))
		_, ok := store.Token()
		assert.True(t, ok)
	})
}

func TestSetTokenOverwrites(t *testing.T) {
	t.Parallel()
	store, _ := newStore(t)

	first := signedToken(t, time.Now().Add(time.Hour))
	second := signedToken(t, time.Now().Add(2*time.Hour))

	require.NoError(t, store.SetToken(first))
	require.NoError(t, store.SetToken(second))

	got, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, second, got)
}

func TestSetTokenEmpty(t *testing.T) {
	t.Parallel()
	store, _ := newStore(t)
	require.ErrorIs(t, store.SetToken(""), tokenstore.ErrEmptyToken)
}

func TestRemoveTokenIdempotent(t *testing.T) {
	t.Parallel()
	store, _ := newStore(t)

	require.NoError(t, store.SetToken(signedToken(t, time.Now().Add(time.Hour))))
	store.RemoveToken()
	store.RemoveToken() // second call must not panic or error

	_, ok := store.Token()
	assert.False(t, ok)
}

func TestCustomStorageKey(t *testing.T) {
	t.Parallel()
	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	storage := tokenstore.NewMemoryStorage()
	store, err := tokenstore.New(storage, key, tokenstore.WithStorageKey("session.credential"))
	require.NoError(t, err)

	require.NoError(t, store.SetToken(signedToken(t, time.Now().Add(time.Hour))))

	_, ok := storage.Get("session.credential")
	assert.True(t, ok)
	_, ok = storage.Get(tokenstore.DefaultStorageKey)
	assert.False(t, ok)
}
