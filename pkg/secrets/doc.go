// Package secrets provides the symmetric encryption used to protect
// credentials before they reach client-side storage.
//
// A single 32-byte application key is stretched through HKDF-SHA-256 with a
// fixed domain-separation label and then used with AES-256 in GCM mode. On
// successful encryption the nonce is prepended to the ciphertext so that all
// necessary data is self-contained; string helpers additionally base64-encode
// the result so it can live in any string-valued storage slot.
//
// Encrypting the credential at rest mitigates casual inspection of storage.
// It is not a security boundary on its own: the backend must independently
// validate every token it receives.
//
// # Usage
//
//	import "github.com/dmitrymomot/authkit/pkg/secrets"
//
//	key, _ := secrets.GenerateKey() // or secrets.KeyFromString(cfg.EncryptionKey)
//
//	ct, err := secrets.EncryptString(key, token)
//	if err != nil {
//	    // handle error
//	}
//
//	plain, err := secrets.DecryptString(key, ct)
//	if err != nil {
//	    // corrupted or foreign ciphertext
//	}
//
// # Error Handling
//
// All public functions return errors that wrap a sentinel such as
// ErrDecryptionFailed or ErrInvalidCiphertext. Use errors.Is to match against
// these sentinels. Decryption of arbitrary unrelated input returns an error;
// it never panics.
package secrets
