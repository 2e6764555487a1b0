package redact

import (
	"strings"
	"testing"
)

func TestSecrets(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"clean", "request failed: http 500", "request failed: http 500"},
		{
			"query param key",
			`Get "https://generativelanguage.googleapis.com/v1beta/models?key=AIzaSyFoo123": http 403`,
			`Get "https://generativelanguage.googleapis.com/v1beta/models?key=<redacted>": http 403`,
		},
		{
			"query param key after other params",
			"url: /v1/models/gemini-2.5-flash:generateContent?alt=json&key=AIzaSyBar rejected",
			"url: /v1/models/gemini-2.5-flash:generateContent?alt=json&key=<redacted> rejected",
		},
		{"api key kv", "bad config: api_key=sk-12345 invalid", "bad config: api_key=<redacted> invalid"},
		{"gemini key kv", "GEMINI_API_KEY: AIzaSyFoo is expired", "GEMINI_API_KEY=<redacted> is expired"},
		{"bearer token", "auth failed: Bearer eyJhbGciOi.abc.def rejected", "auth failed: Bearer <redacted> rejected"},
	}
	for _, tc := range cases {
		if got := Secrets(tc.in); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSecrets_ScrubsEnvKeyValue(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "AIzaSyEnvSecret")

	out := Secrets(`genai: invalid argument "AIzaSyEnvSecret" for credentials`)
	if strings.Contains(out, "AIzaSyEnvSecret") {
		t.Fatalf("env key value leaked: %q", out)
	}
	if !strings.Contains(out, "<redacted>") {
		t.Fatalf("env key value not replaced: %q", out)
	}
}

func TestSecrets_NeverLeaksToken(t *testing.T) {
	out := Secrets("error: Bearer super-secret-token and api-key = another-secret and ?key=third-secret")
	for _, leak := range []string{"super-secret-token", "another-secret", "third-secret"} {
		if strings.Contains(out, leak) {
			t.Fatalf("secret %q leaked: %q", leak, out)
		}
	}
}
