// Package redact strips secrets from error and log strings before they reach
// the console. The surfaces that can leak here are the Gemini API key (query
// param, key=value config dumps, or the raw env value echoed back inside an
// SDK error) and bearer tokens from HTTP error bodies.
package redact

import (
	"os"
	"regexp"
	"strings"
)

var (
	// Google API clients pass the key as a ?key= query parameter, which
	// shows up verbatim in wrapped *url.Error strings.
	keyParamRe = regexp.MustCompile(`([?&]key=)[^&\s"']+`)

	// key=value and key: value forms from config parse errors and dumps.
	apiKeyKVRe = regexp.MustCompile(`(?i)\b((?:gemini[_-])?api[_-]?key)\b\s*[:=]\s*[^\s"']+`)

	bearerTokenRe = regexp.MustCompile(`(?i)\bBearer\s+[^\s"']+`)
)

// Secrets removes secret-bearing substrings from s, including the literal
// value of GEMINI_API_KEY wherever it appears.
func Secrets(s string) string {
	if s == "" {
		return ""
	}
	out := keyParamRe.ReplaceAllString(s, "${1}<redacted>")
	out = apiKeyKVRe.ReplaceAllString(out, "${1}=<redacted>")
	out = bearerTokenRe.ReplaceAllString(out, "Bearer <redacted>")
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		out = strings.ReplaceAll(out, key, "<redacted>")
	}
	return strings.TrimSpace(out)
}
