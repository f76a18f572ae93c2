// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error responses. Provider error messages
// can echo credentials or endpoint URLs, and raw model replies echo the user's
// business description, so both pass through this package before reaching logs.
package redact

import (
	"fmt"
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; more specific patterns come first.
var rules = []rule{
	// Connection strings with embedded credentials
	{
		regexp.MustCompile(`(?i)(postgres|postgresql|redis|rediss|mongodb|mongodb\+srv)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	// JWT tokens (three base64url segments)
	{
		regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		RedactedJWTPlaceholder,
	},
	// LLM provider keys: OpenAI / Groq / Google
	{
		regexp.MustCompile(`\b(sk-[A-Za-z0-9_-]{16,}|gsk_[A-Za-z0-9]{16,}|AIza[0-9A-Za-z_-]{20,})`),
		RedactedKeyPlaceholder,
	},
	// Bearer credentials
	{
		regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]{8,}=*`),
		"Bearer " + RedactedKeyPlaceholder,
	},
	// Generic key=value secrets
	{
		regexp.MustCompile(`(?i)(api[_-]?key|token|secret|password|passwd|pwd)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		RedactedEmailPlaceholder,
	},
	// Absolute unix file paths (at least two segments)
	{
		regexp.MustCompile(`(^|[\s"'(=])(/[\w.-]+){2,}`),
		"${1}" + RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// Truncate shortens s to at most max bytes, noting how much was dropped.
// Raw model replies can be several kilobytes; logs only need the head.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return fmt.Sprintf("%s...[truncated %d bytes]", s[:max], len(s)-max)
}
