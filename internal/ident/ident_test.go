package ident_test

import (
	"testing"

	"bindery/internal/ident"
)

func TestNewProducesFixedLengthUniqueIDs(t *testing.T) {
	const n = 20000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := ident.New()
		if len(id) != ident.Length {
			t.Fatalf("expected %d-character id, got %q (%d)", ident.Length, id, len(id))
		}
		if !ident.Valid(id) {
			t.Fatalf("generated id %q failed validation", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q after %d generations", id, i)
		}
		seen[id] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"aB3dE6gH9jK2mN5p", true},
		{"0000000000000000", true},
		{"short", false},
		{"", false},
		{"aB3dE6gH9jK2mN5!", false},
		{"aB3dE6gH9jK2mN5pX", false},
	}
	for _, tc := range cases {
		if got := ident.Valid(tc.value); got != tc.want {
			t.Errorf("Valid(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
