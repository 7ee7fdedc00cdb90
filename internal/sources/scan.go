package sources

import "strings"

// stripComments removes // and /* */ comments outside of string literals.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				i++
				b.WriteByte(src[i])
			} else if c == quote {
				quote = 0
			}
			continue
		}

		switch {
		case c == '"' || c == '\'' || c == '`':
			quote = c
			b.WriteByte(c)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			i += end + 3
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// matchClose returns the index of the bracket closing the one at open,
// or -1. Brackets inside string literals are ignored.
func matchClose(src string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits src on sep where no bracket or string is open.
func splitTopLevel(src string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, src[start:i])
				start = i + 1
			}
		}
	}
	if start < len(src) {
		parts = append(parts, src[start:])
	}
	return parts
}

// callArgs returns the raw argument text of the first call to method
// (e.g. ".describe") in chain, or false when there is none.
func callArgs(chain, method string) (string, bool) {
	idx := strings.Index(chain, method)
	for idx >= 0 {
		rest := chain[idx+len(method):]
		trimmed := strings.TrimLeft(rest, " \t\r\n")
		if strings.HasPrefix(trimmed, "(") {
			open := idx + len(method) + (len(rest) - len(trimmed))
			end := matchClose(chain, open)
			if end < 0 {
				return "", false
			}
			return chain[open+1 : end], true
		}
		next := strings.Index(chain[idx+len(method):], method)
		if next < 0 {
			break
		}
		idx += len(method) + next
	}
	return "", false
}
