package strutil

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPadLen(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"pads short", "DB", 5, "DB   "},
		{"truncates long", "NETWORKING", 3, "NET"},
		{"exact unchanged", "CACHE", 5, "CACHE"},
		{"empty input", "", 3, "   "},
		{"zero length", "abc", 0, ""},
		{"negative length", "abc", -1, ""},
		{"multibyte truncation", "héllo wörld", 5, "héllo"},
		{"multibyte padding", "ñ", 3, "ñ  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PadLen(tt.input, tt.n))
		})
	}
}

func TestPadLen_AlwaysExactRuneCount(t *testing.T) {
	inputs := []string{"", "a", "category", "a much longer category name", "日本語のカテゴリ"}
	for _, s := range inputs {
		for n := 0; n <= 20; n++ {
			assert.Equal(t, n, utf8.RuneCountInString(PadLen(s, n)), "%q to %d", s, n)
		}
	}
}

func TestPadLenAll(t *testing.T) {
	got := PadLenAll([]string{"a", "abcdef", "abc"}, 3)
	assert.Equal(t, []string{"a  ", "abc", "abc"}, got)
	assert.Empty(t, PadLenAll(nil, 3))
}

func TestPadLenMap(t *testing.T) {
	got := PadLenMap(map[string]string{"x": "a", "y": "abcdef"}, 4)
	assert.Equal(t, map[string]string{"x": "a   ", "y": "abcd"}, got)
}

func TestPadEq(t *testing.T) {
	got := PadEq([]string{"a", "abcd", "ab"})
	assert.Equal(t, []string{"a   ", "abcd", "ab  "}, got)

	assert.Equal(t, []string{"ü ", "üü"}, PadEq([]string{"ü", "üü"}))
	assert.Empty(t, PadEq(nil))
}

func TestPadEqMap(t *testing.T) {
	got := PadEqMap(map[int]string{1: "x", 2: "xyz"})
	assert.Equal(t, map[int]string{1: "x  ", 2: "xyz"}, got)
}

func TestTrunc(t *testing.T) {
	tests := []struct {
		input    string
		n        int
		expected string
	}{
		{"hello", 3, "hel"},
		{"hi", 5, "hi"},
		{"hello", 5, "hello"},
		{"hello", 0, ""},
		{"ümlaut", 2, "üm"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Trunc(tt.input, tt.n))
		})
	}
}
