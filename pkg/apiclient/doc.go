// Package apiclient provides the single configured HTTP client the toolkit
// talks to its backend through.
//
// The client owns the concerns that would otherwise leak into every call
// site:
//
//   - Request decoration: bearer credential from the TokenSource, a
//     millisecond wall-clock X-Timestamp on non-GET requests as a light
//     anti-replay signal, X-Requested-With and Content-Type defaults, and a
//     per-request X-Request-ID.
//   - Failure classification: every error response maps to exactly one
//     package sentinel (ErrUnauthorized, ErrForbidden, ErrNotFound,
//     ErrValidation, ErrRateLimited, ErrServer) and every transport failure
//     to ErrTimeout, ErrOffline or ErrNetwork.
//   - Forced logout: a 401 clears the stored credential and redirects to the
//     login route (once, and only when not already there). Centralizing this
//     here keeps redirect logic out of business code.
//
// Errors are always re-raised to the caller after classification; apart from
// the 401 branch the client observes failures without acting on them. Rate
// limits (429) are not retried at this layer.
//
// # Usage
//
//	client, err := apiclient.New(cfg.APIBaseURL,
//	    apiclient.WithTokenSource(tokens),
//	    apiclient.WithNavigator(router),
//	    apiclient.WithLogger(log),
//	)
//
//	var out struct {
//	    User User `json:"user"`
//	}
//	if err := client.Get(ctx, "/auth/verify", &out); err != nil {
//	    if errors.Is(err, apiclient.ErrUnauthorized) {
//	        // credential already cleared, redirect already issued
//	    }
//	}
package apiclient
