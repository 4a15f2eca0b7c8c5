package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncatePreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than cap", "hello", 10, "hello"},
		{"exactly at cap", "hello", 5, "hello"},
		{"over cap", "hello world", 5, "hello..."},
		{"empty", "", 5, ""},
		{"zero cap passes through", "hello", 0, "hello"},
		{"multibyte over cap", "привет мир", 6, "привет..."},
		{"multibyte at cap", "привет", 6, "привет"},
		{"mixed", "a日本語b", 3, "a日本..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatePreview(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got), "truncation must not split runes")
		})
	}
}

func TestTruncatePreviewLongText(t *testing.T) {
	in := strings.Repeat("я", 500)
	got := TruncatePreview(in, 160)
	assert.Equal(t, 160+3, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.True(t, utf8.ValidString(got))
}
