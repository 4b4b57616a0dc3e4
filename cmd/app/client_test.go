package main

import "testing"

func TestServerURL(t *testing.T) {
	cases := []struct {
		addr string
		want string
	}{
		{":8080", "http://127.0.0.1:8080"},
		{"0.0.0.0:8080", "http://127.0.0.1:8080"},
		{"[::]:9000", "http://127.0.0.1:9000"},
		{"localhost:9000", "http://localhost:9000"},
		{"10.0.0.5:80", "http://10.0.0.5:80"},
		{"[::1]:8080", "http://[::1]:8080"},
		{"8080", defaultServerURL},
		{"", defaultServerURL},
	}
	for _, tc := range cases {
		if got := serverURL(tc.addr); got != tc.want {
			t.Fatalf("serverURL(%q) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}
