// Package sanitizer provides the defensive input cleaning applied to
// free-text user input before it leaves the client.
//
// All helpers are pure functions over strings with no side effects. The
// transformations are intentionally blunt: angle brackets, javascript:
// schemes and inline event-handler patterns are removed outright rather than
// escaped, because the cleaned values are sent to a backend, not rendered.
// The backend remains responsible for real validation and escaping.
package sanitizer
