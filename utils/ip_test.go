package utils

import "testing"

func TestIsIPLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"10.0.0.1", true},
		{" 10.0.0.1 ", true},
		{"::1", true},
		{"[fe80::1]", true},
		{"10.0.0.1/24", false},
		{"api.example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsIPLiteral(tt.in); got != tt.want {
				t.Errorf("got: %v, want: %v", got, tt.want)
			}
		})
	}
}
