package utils

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"   ", ""},
		{"GET", "GET"},
		{"  /users/{id}\n", "/users/{id}"},
		{"Create\n\t  a   user", "Create a user"},
	}

	for _, tt := range tests {
		if got := NormalizeWhitespace(tt.input); got != tt.expected {
			t.Errorf("NormalizeWhitespace(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank(" \n\t") {
		t.Error("whitespace-only string should be blank")
	}
	if IsBlank(" x ") {
		t.Error("non-empty string should not be blank")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"한국어텍스트입니다", 5, "한국..."},
		{"abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.input, tt.maxLen); got != tt.expected {
			t.Errorf("Truncate(%q, %d) = %q, expected %q", tt.input, tt.maxLen, got, tt.expected)
		}
	}
}
