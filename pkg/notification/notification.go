package notification

// Type classifies a notification for presentation purposes.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Payload is a presentation-agnostic notification message. It travels with
// route redirects (as query parameters) and with typed errors so any UI layer
// can render it without knowing where it originated.
type Payload struct {
	Message string `json:"message"`
	Type    Type   `json:"type"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Well-known notification codes used across the toolkit.
const (
	CodeLoginRequired       = "login-required"
	CodeTokenInvalid        = "token-invalid"
	CodeUnauthorizedAccess  = "unauthorized-access"
	CodeGenericError        = "generic-error"
	CodeFormValidationError = "form-validation-error"
	CodeResourceNotFound    = "resource-not-found"

	CodeLoginSuccess        = "login-success"
	CodeLogoutSuccess       = "logout-success"
	CodeRegistrationSuccess = "registration-success"

	CodeSessionExpiring = "session-expiring"
)

// predefined maps a code to its canonical message and type. Keeping the table
// in one place guarantees consistent wording wherever the code surfaces.
var predefined = map[string]Payload{
	CodeLoginRequired: {
		Message: "You need to be signed in to access this page.",
		Type:    TypeError,
	},
	CodeTokenInvalid: {
		Message: "Your session has expired or the token is invalid. Please sign in again.",
		Type:    TypeError,
	},
	CodeUnauthorizedAccess: {
		Message: "You do not have permission to access this resource.",
		Type:    TypeError,
	},
	CodeGenericError: {
		Message: "An unexpected error occurred. Please try again.",
		Type:    TypeError,
	},
	CodeFormValidationError: {
		Message: "Please correct the highlighted form errors.",
		Type:    TypeError,
	},
	CodeResourceNotFound: {
		Message: "The requested resource was not found.",
		Type:    TypeError,
	},
	CodeLoginSuccess: {
		Message: "Signed in successfully. Redirecting...",
		Type:    TypeSuccess,
	},
	CodeLogoutSuccess: {
		Message: "Signed out successfully.",
		Type:    TypeSuccess,
	},
	CodeRegistrationSuccess: {
		Message: "Registration completed. You can sign in now.",
		Type:    TypeSuccess,
	},
	CodeSessionExpiring: {
		Message: "Your session is about to expire. Save your work.",
		Type:    TypeWarning,
	},
}

// Predefined returns the canonical payload for a well-known code.
// The second return value is false for unknown codes.
func Predefined(code string) (Payload, bool) {
	p, ok := predefined[code]
	if !ok {
		return Payload{}, false
	}
	p.Code = code
	return p, true
}
