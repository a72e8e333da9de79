package redis

import "testing"

func TestKeyHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"key", Key("a", "b"), "serp:a:b"},
		{"session", SessionKey("42"), "serp:session:42"},
		{"rate limit", RateLimitKey("email", "ops@example.com"), "serp:ratelimit:email:ops@example.com"},
		{"lock", LockKey("sweeper"), "serp:lock:sweeper"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}
