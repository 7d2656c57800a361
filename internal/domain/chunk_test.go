package domain

import "testing"

func TestBaseID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"policy.md#3", "policy.md"},
		{"a.txt#1", "a.txt"},
		{"no-suffix", "no-suffix"},
		{"weird#1#2", "weird"},
		{"", ""},
	}
	for _, c := range cases {
		if got := BaseID(c.in); got != c.want {
			t.Errorf("BaseID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
