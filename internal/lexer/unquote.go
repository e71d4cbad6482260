package lexer

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errBadEscape = errors.New("invalid escape sequence")

// Unquote decodes a string or template literal token text (with its quotes)
// into its value. Template literals containing substitutions are rejected.
func Unquote(raw string) (string, error) {
	if len(raw) < 2 {
		return "", errors.New("literal too short")
	}
	quote := raw[0]
	if raw[len(raw)-1] != quote || (quote != '"' && quote != '\'' && quote != '`') {
		return "", errors.New("mismatched quotes")
	}
	body := raw[1 : len(raw)-1]
	if quote == '`' && strings.Contains(body, "${") {
		return "", errors.New("template literal with substitutions")
	}
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", errBadEscape
		}
		switch e := body[i]; e {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case '\n':
			// продолжение строки
		case 'x':
			if i+3 > len(body) {
				return "", errBadEscape
			}
			v, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", errBadEscape
			}
			sb.WriteRune(rune(v))
			i += 2
		case 'u':
			r, n, err := decodeUnicodeEscape(body[i+1:])
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			i += n
		default:
			sb.WriteByte(e)
		}
	}
	return sb.String(), nil
}

// decodeUnicodeEscape parses XXXX or {X...} after "\u" and returns the rune
// and the number of bytes consumed.
func decodeUnicodeEscape(s string) (rune, int, error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, errBadEscape
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return 0, 0, errBadEscape
		}
		return rune(v), end + 1, nil
	}
	if len(s) < 4 {
		return 0, 0, errBadEscape
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, errBadEscape
	}
	return rune(v), 4, nil
}
