package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedOrigins(t *testing.T) {
	check := AllowedOrigins([]string{"https://jobs.example.com/", " https://admin.example.com"})

	cases := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://jobs.example.com", true},
		{"https://ADMIN.example.com", true},
		{"http://api.local:8080", true},
		{"https://evil.example.net", false},
		{"null", false},
	}
	for _, tc := range cases {
		t.Run(tc.origin, func(t *testing.T) {
			r := httptest.NewRequest("GET", "http://api.local:8080/ws/notifications", nil)
			if tc.origin != "" {
				r.Header.Set("Origin", tc.origin)
			}
			assert.Equal(t, tc.want, check(r))
		})
	}

	open := AllowedOrigins([]string{"*"})
	r := httptest.NewRequest("GET", "/ws/notifications", nil)
	r.Header.Set("Origin", "https://anywhere.example.org")
	assert.True(t, open(r))
}
