// Package iterx holds the pull cursors behind the lazyfn origins. Every
// cursor returns the zero-based emission index, the value and whether a
// value was produced; once it reports false it keeps doing so.
package iterx

import (
	"strings"
	"unicode/utf8"
)

func FromSlice[T any](in []T) func() (int, T, bool) {
	pos := 0
	return func() (int, T, bool) {
		if pos >= len(in) {
			var zero T
			return 0, zero, false
		}
		i := pos
		pos++
		return i, in[i], true
	}
}

func FromChan[T any](in <-chan T) func() (int, T, bool) {
	pos := 0
	done := false
	return func() (int, T, bool) {
		var zero T
		if done {
			return 0, zero, false
		}
		item, ok := <-in
		if !ok {
			done = true
			return 0, zero, false
		}
		i := pos
		pos++
		return i, item, true
	}
}

// Runes yields s one character at a time. Invalid UTF-8 bytes are
// emitted individually.
func Runes(s string) func() (int, string, bool) {
	pos := 0
	return func() (int, string, bool) {
		if len(s) == 0 {
			return 0, "", false
		}
		_, size := utf8.DecodeRuneInString(s)
		r := s[:size]
		s = s[size:]
		i := pos
		pos++
		return i, r, true
	}
}

// Split yields the substrings of s separated by the literal delimiter
// sep, finding each occurrence only when the next piece is requested.
// sep must not be empty.
func Split(s, sep string) func() (int, string, bool) {
	pos := 0
	done := false
	return func() (int, string, bool) {
		if done {
			return 0, "", false
		}
		i := pos
		pos++
		idx := strings.Index(s, sep)
		if idx < 0 {
			done = true
			return i, s, true
		}
		piece := s[:idx]
		s = s[idx+len(sep):]
		return i, piece, true
	}
}
