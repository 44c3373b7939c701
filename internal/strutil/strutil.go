// Package strutil provides rune-aware padding and truncation used to keep
// console columns aligned.
package strutil

import "strings"

// PadLen returns s truncated or right-padded with spaces so that it is
// exactly n runes long.
func PadLen(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	switch {
	case len(runes) > n:
		return string(runes[:n])
	case len(runes) < n:
		return s + strings.Repeat(" ", n-len(runes))
	default:
		return s
	}
}

// PadLenAll applies PadLen to every element of values.
func PadLenAll(values []string, n int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = PadLen(v, n)
	}
	return out
}

// PadLenMap applies PadLen to every value of m.
func PadLenMap[K comparable](m map[K]string, n int) map[K]string {
	out := make(map[K]string, len(m))
	for k, v := range m {
		out[k] = PadLen(v, n)
	}
	return out
}

// PadEq right-pads every element of values to the rune length of the
// longest one. Nothing is truncated.
func PadEq(values []string) []string {
	width := maxLen(values)
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = padRight(v, width)
	}
	return out
}

// PadEqMap is PadEq over the values of m.
func PadEqMap[K comparable](m map[K]string) map[K]string {
	width := 0
	for _, v := range m {
		if l := len([]rune(v)); l > width {
			width = l
		}
	}
	out := make(map[K]string, len(m))
	for k, v := range m {
		out[k] = padRight(v, width)
	}
	return out
}

// Trunc returns at most the first n runes of s.
func Trunc(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}

func maxLen(values []string) int {
	width := 0
	for _, v := range values {
		if l := len([]rune(v)); l > width {
			width = l
		}
	}
	return width
}

func padRight(s string, width int) string {
	if l := len([]rune(s)); l < width {
		return s + strings.Repeat(" ", width-l)
	}
	return s
}
