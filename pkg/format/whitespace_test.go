package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWhitespaceOnly(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "empty string", text: "", want: true},
		{name: "spaces only", text: "   ", want: true},
		{name: "every whitespace kind", text: " \n \n \r \r\n \r\n \t \v \f ", want: true},
		{name: "newlines only", text: "\n\n\n", want: true},
		{name: "single letter", text: "a", want: false},
		{name: "letter surrounded by whitespace", text: " \t a \n ", want: false},
		{name: "unicode content", text: "héllo", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWhitespaceOnly(tt.text))
		})
	}
}
