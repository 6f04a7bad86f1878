// Package router is an in-process navigation engine for client
// applications: a static route table with per-route authorization policy, a
// guard chain run before every transition, and a committed current location
// that collaborators can read and subscribe to.
//
// Routes declare their policy statically (RequiresAuth, GuestOnly and an
// optional role allow-list) and guards consult it together with the session
// state. AuthGuard implements the standard policy: credential re-verification
// before each transition, login redirects for unauthenticated access,
// landing-route redirects for authenticated visits to guest-only pages, and
// an unauthorized route for role mismatches. Redirects carry their
// notification payload in the query string so the destination page can
// explain what happened.
//
// The Router satisfies the Navigator interfaces of apiclient (forced-logout
// redirects) and authstate (post-auth landing, sign-out), closing the loop
// between the HTTP layer, the session store and navigation without any
// package-level state.
//
// # Usage
//
//	r, err := router.New(router.DefaultRoutes())
//	if err != nil {
//	    // handle error
//	}
//	r.Use(router.AuthGuard(session))
//
//	if err := r.Navigate(ctx, "/dashboard"); err != nil {
//	    // redirect loop: policy misconfiguration
//	}
//
//	loc := r.Current() // where the guards let us land
package router
