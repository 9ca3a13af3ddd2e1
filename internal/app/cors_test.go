package app

import "testing"

func TestExtractOriginHost(t *testing.T) {
	cases := map[string]string{
		"https://lueur.studio":      "lueur.studio",
		"https://lueur.studio:8443": "lueur.studio:8443",
		"not a url":                 "not a url",
	}
	for origin, want := range cases {
		if got := extractOriginHost(origin); got != want {
			t.Fatalf("extractOriginHost(%q) = %q, want %q", origin, got, want)
		}
	}
}

func TestMatchOriginPattern(t *testing.T) {
	cases := []struct {
		pattern, host string
		want          bool
	}{
		{"lueur.studio", "lueur.studio", true},
		{"lueur.studio", "evil.example", false},
		{"*.lueur.studio", "admin.lueur.studio", true},
		{"*.lueur.studio", "lueurstudio.com", false},
		{"localhost:*", "localhost:5173", true},
		{"localhost:*", "remotehost:5173", false},
	}
	for _, tc := range cases {
		if got := matchOriginPattern(tc.pattern, tc.host); got != tc.want {
			t.Fatalf("matchOriginPattern(%q, %q) = %v, want %v", tc.pattern, tc.host, got, tc.want)
		}
	}
}
