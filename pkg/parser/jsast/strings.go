package jsast

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// lineContinuation marks a backslash-newline pair, which contributes nothing.
const lineContinuation rune = -1

// UnquoteString strips JavaScript string delimiters and resolves escapes.
// Template literals keep their contents verbatim, placeholders included.
func UnquoteString(text string) string {
	if len(text) < 2 {
		return text
	}

	first, last := text[0], text[len(text)-1]
	if first != last {
		return text
	}

	switch first {
	case '`':
		return text[1 : len(text)-1]
	case '\'', '"':
		return unescape(text[1 : len(text)-1])
	default:
		return text
	}
}

// unescape decodes JavaScript escape sequences, including \u{...} code
// points, UTF-16 surrogate pairs, legacy octal and line continuations.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}

		r, n := decodeEscape(s[i+1:])
		i += 1 + n

		if utf16.IsSurrogate(r) && strings.HasPrefix(s[i:], `\u`) {
			if r2, n2 := decodeEscape(s[i+1:]); utf16.IsSurrogate(r2) {
				if pair := utf16.DecodeRune(r, r2); pair != utf8.RuneError {
					r = pair
					i += 1 + n2
				}
			}
		}

		if r != lineContinuation {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// decodeEscape decodes the escape whose text follows a backslash and
// reports how many bytes of s it consumed.
func decodeEscape(s string) (rune, int) {
	switch c := s[0]; c {
	case 'n':
		return '\n', 1
	case 't':
		return '\t', 1
	case 'r':
		return '\r', 1
	case 'b':
		return '\b', 1
	case 'f':
		return '\f', 1
	case 'v':
		return '\v', 1
	case '\n':
		return lineContinuation, 1
	case '\r':
		if len(s) > 1 && s[1] == '\n' {
			return lineContinuation, 2
		}
		return lineContinuation, 1
	case 'x':
		if r, ok := parseHex(s[1:min(len(s), 3)], 2); ok {
			return r, 3
		}
		return 'x', 1
	case 'u':
		if len(s) > 1 && s[1] == '{' {
			if end := strings.IndexByte(s, '}'); end > 2 {
				if r, ok := parseHex(s[2:end], end-2); ok && r <= utf8.MaxRune {
					return r, end + 1
				}
			}
			return 'u', 1
		}
		if r, ok := parseHex(s[1:min(len(s), 5)], 4); ok {
			return r, 5
		}
		return 'u', 1
	}

	if c := s[0]; c >= '0' && c <= '7' {
		return decodeOctal(s)
	}

	r, n := utf8.DecodeRuneInString(s)
	if r == '\u2028' || r == '\u2029' {
		return lineContinuation, n
	}
	return r, n
}

// decodeOctal handles \0 and legacy octal escapes up to \377.
func decodeOctal(s string) (rune, int) {
	limit := 3
	if s[0] > '3' {
		limit = 2
	}

	n := 1
	for n < limit && n < len(s) && s[n] >= '0' && s[n] <= '7' {
		n++
	}

	v, _ := strconv.ParseUint(s[:n], 8, 32)
	return rune(v), n
}

func parseHex(digits string, want int) (rune, bool) {
	if len(digits) != want || want == 0 {
		return 0, false
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
