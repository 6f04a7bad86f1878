package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

// Pre-compiled regular expressions for performance
var (
	// javascript: protocol, case-insensitive
	jsProtocolRegex = regexp.MustCompile(`(?i)javascript:`)

	// Inline event-handler patterns (onclick=, onload=, onmouseover=, ...)
	eventHandlerRegex = regexp.MustCompile(`(?i)on\w+=`)
)

// Sanitize strips obviously dangerous content from free-text user input
// before it is sent to the backend: angle brackets, javascript: schemes and
// inline event-handler patterns are removed, and surrounding whitespace is
// trimmed. It reduces trivially malicious payloads only; it is not a
// substitute for server-side validation and output escaping.
func Sanitize(input string) string {
	result := strings.ReplaceAll(input, "<", "")
	result = strings.ReplaceAll(result, ">", "")
	result = jsProtocolRegex.ReplaceAllString(result, "")
	result = eventHandlerRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Email sanitizes an e-mail address for transmission: Sanitize plus
// lowercasing. Passwords must never go through this path so that
// user-chosen characters survive unmodified.
func Email(input string) string {
	return strings.ToLower(Sanitize(input))
}

// StripControlRunes removes control characters except common whitespace.
func StripControlRunes(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}
