package parser

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// line is a single non-blank payload line paired with its 1-based number.
// Numbering counts every line of the trimmed payload, including blank ones,
// so error messages match what the user sees in their paste buffer.
type line struct {
	num  int
	text string
}

// numberedLines splits a payload into trimmed, non-blank lines.
func numberedLines(raw string) []line {
	var out []line
	for i, l := range strings.Split(strings.TrimSpace(raw), "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, line{num: i + 1, text: l})
	}
	return out
}

// SanitizeUTF8 replaces invalid UTF-8 byte sequences with the Unicode
// replacement character. Payloads pasted from browsers are occasionally
// mangled by clipboard encoding; a bad byte must not poison the whole
// import.
func SanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
