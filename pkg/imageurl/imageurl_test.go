package imageurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name, domain, path, want string
	}{
		{"empty path", "https://api.example.com", "", Placeholder},
		{"blank path", "https://api.example.com", "   ", Placeholder},
		{"relative", "https://api.example.com", "uploads/products/card.png", "https://api.example.com/uploads/products/card.png"},
		{"trailing and leading slash", "https://api.example.com/", "/uploads/a.png", "https://api.example.com/uploads/a.png"},
		{"backslashes", "https://api.example.com", `uploads\header images\hero 1.jpg`, "https://api.example.com/uploads/header%20images/hero%201.jpg"},
		{"absolute passes through", "https://api.example.com", "https://cdn.example.com/x y.png", "https://cdn.example.com/x%20y.png"},
		{"protocol relative", "https://api.example.com", "//cdn.example.com/a.png", "//cdn.example.com/a.png"},
		{"no domain", "", "uploads/a.png", "/uploads/a.png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.domain, tc.path))
		})
	}
}

func TestResolver_URL(t *testing.T) {
	r := Resolver{Domain: "http://localhost:8000"}
	assert.Equal(t, "http://localhost:8000/storage/logo.png", r.URL("storage/logo.png"))
}
