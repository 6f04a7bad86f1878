// Package tokenstore keeps a single bearer token encrypted at rest in
// ephemeral client-side storage.
//
// The token is encrypted with AES-256-GCM (see pkg/secrets) before it touches
// the Storage backend, and decrypted plus expiry-checked on every read. The
// embedded JWT exp claim is decoded without signature verification; the
// client holds no signing key; the check only short-circuits requests that
// the backend would reject anyway.
//
// # Failure policy
//
// Every decode, decrypt and expiry failure degrades to "absent". Token()
// returns ("", false) uniformly for a missing value, corrupted ciphertext, an
// unreadable claim set and an expired credential, so callers cannot
// accidentally branch on the difference. Expired credentials are deleted from
// storage as a side effect of the read that detects them.
//
// # Usage
//
//	store, err := tokenstore.New(tokenstore.NewMemoryStorage(), key)
//	if err != nil {
//	    // handle error
//	}
//
//	_ = store.SetToken(accessToken)
//
//	if token, ok := store.Token(); ok {
//	    req.Header.Set("Authorization", "Bearer "+token)
//	}
//
//	store.RemoveToken() // sign-out
package tokenstore
