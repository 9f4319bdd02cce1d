// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. This service's main leak surface is the
// upstream completion API: credentials in our own request context and raw
// error bodies echoed back by the provider.
package redact

import "regexp"

// RedactionPlaceholder replaces any matched sensitive fragment.
const RedactionPlaceholder = "[REDACTED]"

// Precompiled patterns for the fragments this service can realistically leak.
var (
	// Bearer tokens and Authorization header values.
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]{8,}`)

	// API keys in key=value / key: value form, plus provider-style sk- keys.
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
	skKeyRegex = regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{8,}`)

	patterns = []*regexp.Regexp{bearerRegex, apiKeyRegex, skKeyRegex}
)

// String returns s with every sensitive fragment replaced by the
// redaction placeholder.
func String(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, RedactionPlaceholder)
	}
	return s
}

// Error redacts an error's message. Nil errors yield an empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
