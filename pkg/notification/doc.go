// Package notification defines the presentation-agnostic notification
// payloads that travel with redirects and typed errors.
//
// A Payload carries a human-readable message, a severity Type and an optional
// stable Code. The package also ships a registry of predefined payloads for
// the codes the toolkit emits itself (login-required, token-invalid,
// unauthorized-access, ...), so every surface shows identical wording for the
// same condition.
package notification
