package tsparser

import "strings"

// StripComments blanks out // and /* */ comments while keeping string and
// template literals intact. Newlines are preserved so that positions keep
// their line numbers.
func StripComments(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	inLineComment := false
	inBlockComment := false
	var quote byte // current string delimiter, 0 outside strings
	escaped := false

	for i := 0; i < len(content); i++ {
		char := content[i]

		if inLineComment {
			if char == '\n' {
				inLineComment = false
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
			continue
		}

		if inBlockComment {
			if char == '*' && i+1 < len(content) && content[i+1] == '/' {
				inBlockComment = false
				b.WriteString("  ")
				i++
				continue
			}
			if char == '\n' {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
			continue
		}

		if quote != 0 {
			b.WriteByte(char)
			if escaped {
				escaped = false
				continue
			}
			if char == '\\' {
				escaped = true
				continue
			}
			if char == quote || (char == '\n' && quote != '`') {
				quote = 0
			}
			continue
		}

		if char == '/' && i+1 < len(content) {
			if content[i+1] == '/' {
				inLineComment = true
				b.WriteString("  ")
				i++
				continue
			}
			if content[i+1] == '*' {
				inBlockComment = true
				b.WriteString("  ")
				i++
				continue
			}
		}

		if char == '"' || char == '\'' || char == '`' {
			quote = char
			escaped = false
		}
		b.WriteByte(char)
	}

	return b.String()
}
