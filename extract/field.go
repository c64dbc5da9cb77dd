// Package extract recovers flat string fields from loosely structured model
// output without parsing it as JSON.
//
// Model text is untrusted: it may be truncated, wrapped in markdown fences, or
// preceded by prose. Field only ever looks for one quoted key and the quoted
// string that follows it, so any of that decoration is tolerated.
package extract

import "strings"

// Field returns the decoded string value that follows the first occurrence
// of "key" in text.
//
// After the quoted key it skips to the next colon and any spaces, tabs,
// carriage returns or newlines. The value must then open with a double quote
// and run to the next unescaped double quote. The escapes \n, \t, \r, \" and
// \\ are decoded; any other escaped character is kept without its backslash.
//
// ok is false when the key is missing, the value is not a string, or the
// string is never closed.
func Field(text, key string) (value string, ok bool) {
	label := `"` + key + `"`
	i := strings.Index(text, label)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(label):]

	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return "", false
	}
	rest = strings.TrimLeft(rest[colon+1:], " \t\n\r")
	if rest == "" || rest[0] != '"' {
		return "", false
	}
	rest = rest[1:]

	var b strings.Builder
	for j := 0; j < len(rest); j++ {
		c := rest[j]
		switch c {
		case '"':
			return b.String(), true
		case '\\':
			if j+1 >= len(rest) {
				return "", false
			}
			j++
			b.WriteByte(unescape(rest[j]))
		default:
			b.WriteByte(c)
		}
	}
	return "", false
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}
