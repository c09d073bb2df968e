package utils

import (
	"strings"
	"testing"
)

func TestShortenString(t *testing.T) {
	tests := []struct {
		input    string
		length   int
		expected string
	}{
		{"hello world", 5, "hello..."},
		{"hello", 10, "hello"},
		{"", 3, ""},
		{"abcdef", 0, "abcdef"},
		{"abcdef", 6, "abcdef"},
		{"abcdef", 3, "abc..."},
	}

	for _, tt := range tests {
		result := ShortenString(tt.input, tt.length)
		if result != tt.expected {
			t.Errorf("ShortenString(%q, %d) = %q; want %q", tt.input, tt.length, result, tt.expected)
		}
	}
}

func TestRandomString(t *testing.T) {
	tests := []struct {
		base           string
		expectedPrefix string
	}{
		{"example.com", "example.com-"},
		{"127.0.0.1:8080", "127.0.0.1_8080-"},
		{"", "-"},
	}

	for _, tt := range tests {
		result, err := RandomString(tt.base)
		if err != nil {
			t.Fatalf("RandomString(%q) returned unexpected error: %v", tt.base, err)
		}
		if !strings.HasPrefix(result, tt.expectedPrefix) {
			t.Errorf("RandomString(%q) = %q; want prefix %q", tt.base, result, tt.expectedPrefix)
		}
		if len(result) != len(tt.expectedPrefix)+8 {
			t.Errorf("RandomString(%q) = %q; want 8 random hex characters", tt.base, result)
		}
	}

	a, _ := RandomString("x")
	b, _ := RandomString("x")
	if a == b {
		t.Errorf("expected two calls to return different strings, both returned %q", a)
	}
}
