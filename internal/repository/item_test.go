package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Earplugs", "Earplugs"},
		{"%", `\%`},
		{"_", `\_`},
		{`\`, `\\`},
		{"100% wool", `100\% wool`},
		{`a_b\c%d`, `a\_b\\c\%d`},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLike(tt.in), "input %q", tt.in)
	}
}
