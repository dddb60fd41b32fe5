package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanState(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Delhi", "DELHI"},
		{"ampersand and noise", "the state & co.", "STATE AND CO"},
		{"punctuation", "Jammu & Kashmir*", "JAMMU AND KASHMIR"},
		{"whitespace runs", "  Tamil   Nadu  ", "TAMIL NADU"},
		{"leading article", "The Punjab", "PUNJAB"},
		{"leading article after whitespace", "  the Punjab", "PUNJAB"},
		{"digits dropped", "Delhi 110001", "DELHI"},
		{"accents folded", "Tamil Nādu", "TAMIL NADU"},
		{"empty", "", ""},
		{"only noise", "123!@#", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanState(tc.in))
		})
	}
}

func TestCleanStateIdempotent(t *testing.T) {
	inputs := []string{
		"the state & co.",
		"Jammu & Kashmir",
		"  ANDHRA   pradesh ",
		"THE WEST BENGAL",
		"",
	}
	for _, in := range inputs {
		once := CleanState(in)
		assert.Equal(t, once, CleanState(once), "input: %q", in)
	}
}
