package tsparser

import (
	"strings"

	"nest-sdk-gen/internal/model"
)

// memberModifiers may precede a class member name
var memberModifiers = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"static":    true,
	"readonly":  true,
	"abstract":  true,
	"async":     true,
	"override":  true,
	"declare":   true,
	"accessor":  true,
	"get":       true,
	"set":       true,
}

// member is one parsed class member before overloads are merged
type member struct {
	method  model.Method
	hasBody bool
	skip    bool // constructor, accessor or property
}

// parseClassBody parses the members between start and end (exclusive)
// and returns the methods with their overload signatures attached
func parseClassBody(src string, start, end int) []model.Method {
	c := newCursor(src, start, end)

	var (
		methods   []model.Method
		overloads = make(map[string][]model.Signature)
	)

	for {
		c.skipSpace()
		if c.done() {
			break
		}
		if char := c.peek(); char == ';' || char == ',' || char == '}' {
			c.pos++
			continue
		}

		before := c.pos
		m := parseMember(c)
		if c.pos == before {
			c.pos++ // unparseable byte, never loop forever
			continue
		}
		if m.skip {
			continue
		}

		if !m.hasBody {
			overloads[m.method.Name] = append(overloads[m.method.Name], model.Signature{
				Params:     m.method.Params,
				ReturnType: m.method.ReturnType,
			})
			continue
		}

		m.method.Overloads = overloads[m.method.Name]
		delete(overloads, m.method.Name)
		methods = append(methods, m.method)
	}

	return methods
}

// parseMember parses one class member starting at the cursor
func parseMember(c *cursor) member {
	var m member
	m.method.Line = lineAt(c.src, c.pos)
	accessor := false

	for {
		c.skipSpace()
		if c.peek() != '@' {
			break
		}
		m.method.Decorators = append(m.method.Decorators, parseDecorator(c))
	}
	m.method.Line = lineAt(c.src, c.pos)

	// modifiers, unless the word is itself the member name: get(), static: x
	for {
		c.skipSpace()
		word := c.peekIdent()
		if !memberModifiers[word] {
			break
		}
		saved := c.pos
		c.readIdent()
		next := c.nextNonSpace()
		if !isIdentStart(next) && next != '[' && next != '#' && next != '*' && !isQuote(next) {
			c.pos = saved
			break
		}
		switch word {
		case "public", "private", "protected":
			m.method.Visibility = model.Visibility(word)
		case "static":
			m.method.Static = true
		case "get", "set":
			accessor = true
		}
	}

	c.skipSpace()
	if c.peek() == '*' {
		c.pos++ // generator
		c.skipSpace()
	}

	switch char := c.peek(); {
	case char == '#':
		c.pos++
		m.method.Name = "#" + c.readIdent()
		m.method.Visibility = model.VisibilityPrivate
	case char == '[':
		m.method.Name = "[" + c.skipBalanced() + "]"
	case isQuote(char):
		start := c.pos
		c.skipString()
		m.method.Name = strings.Trim(c.src[start:c.pos], "'\"`")
	case char == '{':
		// static initialization block
		c.skipBalanced()
		m.skip = true
		return m
	default:
		m.method.Name = c.readIdent()
	}

	c.skipSpace()
	if char := c.peek(); char == '?' || char == '!' {
		c.pos++
		c.skipSpace()
	}
	if c.peek() == '<' {
		c.pos = skipAngles(c.src, c.pos, c.end)
		c.skipSpace()
	}

	if c.peek() != '(' {
		// property declaration
		c.skipStatement()
		m.skip = true
		return m
	}

	m.method.Params = parseParams(c.skipBalanced())

	c.skipSpace()
	if c.peek() == ':' {
		c.pos++
		m.method.ReturnType = readReturnType(c)
	}

	c.skipSpace()
	if c.peek() == '{' {
		c.skipBalanced()
		m.hasBody = true
	} else if c.peek() == ';' {
		c.pos++
	}

	if accessor || m.method.Name == "constructor" {
		m.skip = true
	}
	return m
}

// readReturnType reads a return type annotation up to the method body or
// the end of an overload signature
func readReturnType(c *cursor) string {
	start := c.pos
	angle := 0

	for !c.done() {
		char := c.peek()
		switch {
		case isQuote(char):
			c.skipString()
			continue
		case char == '(' || char == '[':
			c.skipBalanced()
			continue
		case char == '{':
			// an object type literal, unless the type is already complete
			text := strings.TrimSpace(c.src[start:c.pos])
			if angle == 0 && text != "" && !endsWithTypeOperator(text) {
				return text
			}
			c.skipBalanced()
			continue
		case char == '<':
			angle++
		case char == '>':
			if c.pos > 0 && c.src[c.pos-1] != '=' && angle > 0 {
				angle--
			}
		case char == ';' && angle == 0:
			return strings.TrimSpace(c.src[start:c.pos])
		case char == '\n' && angle == 0:
			text := strings.TrimSpace(c.src[start:c.pos])
			if text != "" && !continuesStatement(c.src[:c.pos], c.src[c.pos:c.end]) {
				return text
			}
		}
		c.pos++
	}
	return strings.TrimSpace(c.src[start:c.pos])
}

func endsWithTypeOperator(text string) bool {
	for _, op := range []string{"|", "&", ",", "=>", ":", "<", "?"} {
		if strings.HasSuffix(text, op) {
			return true
		}
	}
	return false
}

// parseParams parses a parameter list without its parentheses
func parseParams(list string) []model.Parameter {
	var params []model.Parameter
	for _, raw := range splitTopLevel(list, ',') {
		if raw == "" {
			continue
		}
		params = append(params, parseParam(raw))
	}
	return params
}

// parseParam parses "@Param('id') id?: string = 'x'"
func parseParam(raw string) model.Parameter {
	var p model.Parameter
	c := newCursor(raw, 0, len(raw))

	for {
		c.skipSpace()
		if c.peek() != '@' {
			break
		}
		p.Decorators = append(p.Decorators, parseDecorator(c))
	}

	// parameter properties: constructor(private readonly x: X)
	for {
		c.skipSpace()
		word := c.peekIdent()
		if word != "public" && word != "private" && word != "protected" && word != "readonly" && word != "override" {
			break
		}
		saved := c.pos
		c.readIdent()
		if !isIdentStart(c.nextNonSpace()) && c.nextNonSpace() != '{' && c.nextNonSpace() != '[' {
			c.pos = saved
			break
		}
	}

	c.skipSpace()
	rest := c.src[c.pos:c.end]

	// split "name?: type = default"
	declaration := rest
	if i := indexTopLevel(rest, '='); i >= 0 {
		declaration = rest[:i]
		p.Optional = true
	}

	p.Name = strings.TrimSpace(declaration)
	if i := indexTopLevel(declaration, ':'); i >= 0 {
		p.Name = strings.TrimSpace(declaration[:i])
		p.Type = strings.TrimSpace(declaration[i+1:])
	}

	if strings.HasSuffix(p.Name, "?") {
		p.Name = strings.TrimSpace(strings.TrimSuffix(p.Name, "?"))
		p.Optional = true
	}
	return p
}
