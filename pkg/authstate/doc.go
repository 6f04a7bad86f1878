// Package authstate holds the client's session state and orchestrates the
// four auth operations: sign-up, sign-in, token verification and sign-out.
//
// The Store moves through three logical phases, Unauthenticated,
// Authenticating (a call in flight) and Authenticated (credential and user
// record both present). Sign-out always returns to Unauthenticated; no phase
// is terminal. State is exposed through point-in-time Snapshots and through a
// Subscribe channel, so presentation layers react to changes without the core
// depending on any rendering framework.
//
// The credential itself is never cached here: every Snapshot reads it from
// the token store, the single source of truth. When the HTTP client clears
// the credential on a rejected request, the next Snapshot already reports the
// session as unauthenticated.
//
// Inputs are sanitized before transmission (names and emails; never
// passwords) and validated client-side: a registration with a malformed email
// or a password shorter than MinPasswordLength fails before any request is
// issued.
//
// # Concurrency
//
// Concurrent calls to the same operation coalesce into a single flight
// (golang.org/x/sync/singleflight); joined callers observe the leader's
// result. The Loading flag remains informational for UIs, not a lock.
//
// # Usage
//
//	store, err := authstate.New(client, tokens, router)
//	if err != nil {
//	    // handle error
//	}
//
//	if err := store.SignIn(ctx, email, password); err != nil {
//	    if authstate.IsValidationError(err) {
//	        // show as form error
//	    }
//	}
//
//	go func() {
//	    for state := range store.Subscribe(ctx) {
//	        render(state)
//	    }
//	}()
package authstate
