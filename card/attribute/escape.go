package attribute

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Escape returns the wire form of a value as described in RFC 2426 section 5.
// Line breaks (LF, CR, or CRLF) become "\n" and the characters ';', ',', and
// '\' are escaped with a backslash. Everything else is passed through.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			sb.WriteString(`\n`)
		case ';', ',', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// Unescape reverses Escape. Unknown escapes are passed through with their
// backslash and a trailing backslash is kept as-is.
func Unescape(s string) string {
	return UnescapeWithLogger(s, nil)
}

// UnescapeWithLogger works like Unescape, but reports unknown escapes to the
// given logger. A nil logger is silent.
func UnescapeWithLogger(s string, logger *slog.Logger) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			sb.WriteByte(s[i])
			continue
		}

		if i+1 == len(s) {
			sb.WriteByte('\\')
			break
		}

		r, n := utf8.DecodeRuneInString(s[i+1:])
		if u, known := unescapeRune(r); known {
			sb.WriteByte(u)
		} else {
			if logger != nil {
				logger.Warn("invalid escape, passing it through", "char", string(r))
			}
			sb.WriteByte('\\')
			sb.WriteString(s[i+1 : i+1+n])
		}
		i += n
	}
	return sb.String()
}

// unescapeRune returns the byte that an escaped rune stands for.
func unescapeRune(r rune) (byte, bool) {
	switch r {
	case 'n', 'N':
		return '\n', true
	case 'r', 'R':
		return '\r', true
	case ';', ',', '\\':
		return byte(r), true
	}
	return 0, false
}
