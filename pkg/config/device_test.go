package config

import "testing"

func TestIsMobileUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", true},
		{"Mozilla/5.0 (Linux; Android 14; Pixel 8)", true},
		{"Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)", true},
		{"Opera/9.80 (J2ME/MIDP; Opera Mini/9.80)", true},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0", false},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) Safari/605.1.15", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsMobileUserAgent(tt.ua); got != tt.want {
			t.Errorf("IsMobileUserAgent(%q): got %v, want %v", tt.ua, got, tt.want)
		}
	}
}
