package utils

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "valid ascii", input: "win money now", expected: "win money now"},
		{name: "valid multibyte", input: "£1000 prize", expected: "£1000 prize"},
		{name: "invalid byte dropped", input: "win\xffmoney", expected: "winmoney"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeUTF8(tt.input))
		})
	}
}

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "short", tp.TruncateText("short", 10))
	assert.Equal(t, "unlimited", tp.TruncateText("unlimited", 0))
	assert.Equal(t, "abc...", tp.TruncateText("abcdef", 3))

	// "£" is two bytes; cutting inside it must back off to a rune boundary.
	truncated := tp.TruncateText("a£b", 2)
	assert.True(t, utf8.ValidString(truncated))
	assert.Equal(t, "a...", truncated)
}

func TestProcessText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())
	assert.Equal(t, "ab...", tp.ProcessText("a\xffbcdef", 2))
}
