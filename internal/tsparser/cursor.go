package tsparser

import "strings"

// cursor walks comment-free TypeScript source
type cursor struct {
	src string
	pos int
	end int
}

func newCursor(src string, start, end int) *cursor {
	return &cursor{src: src, pos: start, end: end}
}

func (c *cursor) done() bool {
	return c.pos >= c.end
}

func (c *cursor) peek() byte {
	if c.done() {
		return 0
	}
	return c.src[c.pos]
}

func (c *cursor) skipSpace() {
	for !c.done() && isSpace(c.src[c.pos]) {
		c.pos++
	}
}

// readIdent reads an identifier at the cursor, or returns ""
func (c *cursor) readIdent() string {
	start := c.pos
	for !c.done() && isIdentByte(c.src[c.pos], c.pos == start) {
		c.pos++
	}
	return c.src[start:c.pos]
}

// peekIdent returns the identifier at the cursor without consuming it
func (c *cursor) peekIdent() string {
	saved := c.pos
	ident := c.readIdent()
	c.pos = saved
	return ident
}

// nextNonSpace returns the first non-space byte at or after the cursor
func (c *cursor) nextNonSpace() byte {
	for i := c.pos; i < c.end; i++ {
		if !isSpace(c.src[i]) {
			return c.src[i]
		}
	}
	return 0
}

// skipBalanced moves past the bracket group opening at the cursor
// and returns its inner text
func (c *cursor) skipBalanced() string {
	open := c.pos
	close := findClosing(c.src, open+1, c.end, c.src[open])
	c.pos = close
	inner := close - 1
	if inner < open+1 {
		inner = open + 1
	}
	return c.src[open+1 : inner]
}

// skipString moves past the string literal opening at the cursor
func (c *cursor) skipString() {
	c.pos = skipString(c.src, c.pos, c.end)
}

// skipStatement moves to the end of the current statement: a semicolon at
// depth zero, or a line break after which the statement cannot continue.
func (c *cursor) skipStatement() {
	for !c.done() {
		char := c.src[c.pos]
		switch {
		case char == ';':
			c.pos++
			return
		case char == '}':
			// end of the enclosing block
			return
		case char == '(' || char == '[' || char == '{':
			c.skipBalanced()
		case isQuote(char):
			c.skipString()
		case char == '\n':
			if !continuesStatement(c.src[:c.pos], c.src[c.pos:c.end]) {
				c.pos++
				return
			}
			c.pos++
		default:
			c.pos++
		}
	}
}

// continuesStatement reports whether a line break between before and after
// is inside one statement, judging by the operators around it
func continuesStatement(before, after string) bool {
	before = strings.TrimRight(before, " \t\r")
	after = strings.TrimLeft(after, " \t\r\n")
	if before == "" || after == "" {
		return false
	}
	switch before[len(before)-1] {
	case '=', '|', '&', ',', ':', '?', '+', '-', '*', '<', '>', '.', '(', '[', '{':
		return true
	}
	switch after[0] {
	case '|', '&', '.', '?', ':', '=', '+', '*', ')', ']', '>':
		return true
	}
	return false
}

// findClosing returns the index just past the bracket matching open,
// scanning from start. Handles nesting and string literals.
func findClosing(src string, start, end int, open byte) int {
	closeFor := map[byte]byte{'(': ')', '[': ']', '{': '}'}
	stack := []byte{closeFor[open]}

	for i := start; i < end; i++ {
		char := src[i]
		switch {
		case isQuote(char):
			i = skipString(src, i, end) - 1
		case char == '(' || char == '[' || char == '{':
			stack = append(stack, closeFor[char])
		case char == ')' || char == ']' || char == '}':
			if char == stack[len(stack)-1] {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return i + 1
				}
			}
		}
	}
	return end
}

// skipString returns the index just past the string literal at start.
// Template literal substitutions may nest further strings and braces.
func skipString(src string, start, end int) int {
	quote := src[start]
	for i := start + 1; i < end; i++ {
		char := src[i]
		switch {
		case char == '\\':
			i++
		case char == quote:
			return i + 1
		case quote == '`' && char == '$' && i+1 < end && src[i+1] == '{':
			i = findClosing(src, i+2, end, '{') - 1
		case char == '\n' && quote != '`':
			return i
		}
	}
	return end
}

// splitTopLevel splits s at separators that are not nested in brackets,
// generics or strings
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	for {
		i := indexTopLevel(s, sep)
		if i < 0 {
			break
		}
		parts = append(parts, strings.TrimSpace(s[:i]))
		s = s[i+1:]
	}

	if last := strings.TrimSpace(s); last != "" || len(parts) > 0 {
		parts = append(parts, last)
	}
	return parts
}

// indexTopLevel returns the index of the first sep in s that is not nested
// in brackets, generics or strings, or -1
func indexTopLevel(s string, sep byte) int {
	depth := 0
	angle := 0

	for i := 0; i < len(s); i++ {
		char := s[i]
		switch {
		case isQuote(char):
			i = skipString(s, i, len(s)) - 1
		case char == '(' || char == '[' || char == '{':
			depth++
		case char == ')' || char == ']' || char == '}':
			depth--
		case char == '<':
			angle++
		case char == '>':
			if i > 0 && s[i-1] == '=' {
				continue
			}
			if angle > 0 {
				angle--
			}
		case char == sep && depth == 0 && angle == 0 && !(sep == '=' && isComparison(s, i)):
			return i
		}
	}
	return -1
}

// isComparison reports whether the '=' at i belongs to =>, ==, !=, <= or >=
func isComparison(s string, i int) bool {
	if i+1 < len(s) && (s[i+1] == '>' || s[i+1] == '=') {
		return true
	}
	if i > 0 {
		switch s[i-1] {
		case '=', '!', '<', '>':
			return true
		}
	}
	return false
}

// lineAt returns the 1-based line number of pos
func lineAt(src string, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	return strings.Count(src[:pos], "\n") + 1
}

func isSpace(char byte) bool {
	return char == ' ' || char == '\t' || char == '\n' || char == '\r'
}

func isQuote(char byte) bool {
	return char == '\'' || char == '"' || char == '`'
}

func isIdentByte(char byte, first bool) bool {
	if char == '_' || char == '$' || char >= 0x80 ||
		(char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') {
		return true
	}
	return !first && char >= '0' && char <= '9'
}
