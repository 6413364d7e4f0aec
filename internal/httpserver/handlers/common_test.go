package handlers

import "testing"

func TestSafeReturn(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/", "/"},
		{"/#event-12", "/#event-12"},
		{"/?details=3", "/?details=3"},
		{"", "/"},
		{"//evil.example/x", "/"},
		{"/\\evil.example", "/"},
		{"https://evil.example", "/"},
		{"javascript:alert(1)", "/"},
	}
	for _, tt := range tests {
		if got := safeReturn(tt.in); got != tt.want {
			t.Errorf("safeReturn(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
