package synth

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"nest-sdk-gen/internal/model"
)

// Verb is an HTTP method recognized from a handler decorator
type Verb string

const (
	VerbGet     Verb = "GET"
	VerbPost    Verb = "POST"
	VerbPut     Verb = "PUT"
	VerbPatch   Verb = "PATCH"
	VerbDelete  Verb = "DELETE"
	VerbHead    Verb = "HEAD"
	VerbOptions Verb = "OPTIONS"
)

// verbOf maps a decorator name to its verb. Any other decorator is ignored.
func verbOf(decorator string) (Verb, bool) {
	switch decorator {
	case "Get":
		return VerbGet, true
	case "Post":
		return VerbPost, true
	case "Put":
		return VerbPut, true
	case "Patch":
		return VerbPatch, true
	case "Delete":
		return VerbDelete, true
	case "Head":
		return VerbHead, true
	case "Options":
		return VerbOptions, true
	default:
		return "", false
	}
}

// Route is the classified routing information of a handler
type Route struct {
	Verb Verb
	Path string // full template, e.g. /api/users/{id}
}

// ControllerBaseURL joins the API base with the controller's base segment
func ControllerBaseURL(apiBase string, c *model.Controller) (string, error) {
	dec, ok := c.RoutingDecorator()
	if !ok {
		return "", &Error{Controller: c.Name, Err: ErrNotController}
	}

	segment, err := literalArg(dec)
	if err != nil {
		return "", &Error{Controller: c.Name, Err: err}
	}
	return JoinPath(apiBase, segment), nil
}

// ClassifyRoute finds the verb decorator of m and builds its path template.
// ok is false when m carries no verb decorator: it is not a route handler.
func ClassifyRoute(baseURL string, m *model.Method) (Route, bool, error) {
	var (
		route Route
		found *model.Decorator
	)

	for i := range m.Decorators {
		verb, ok := verbOf(m.Decorators[i].Name)
		if !ok {
			continue
		}
		if found != nil {
			return Route{}, false, fmt.Errorf("%w: @%s and @%s", ErrMultipleVerbs, found.Name, m.Decorators[i].Name)
		}
		found = &m.Decorators[i]
		route.Verb = verb
	}

	if found == nil {
		return Route{}, false, nil
	}

	fragment, err := literalArg(*found)
	if err != nil {
		return Route{}, false, err
	}

	route.Path = JoinPath(baseURL, fragment)
	return route, true, nil
}

// literalArg returns the unwrapped first argument of a routing decorator.
// A missing argument is an empty path fragment.
func literalArg(dec model.Decorator) (string, error) {
	raw, ok := dec.Arg(0)
	if !ok || strings.TrimSpace(raw) == "" {
		return "", nil
	}
	value, ok := UnwrapQuotes(raw)
	if !ok {
		return "", fmt.Errorf("%w: @%s(%s)", ErrNonLiteralArgument, dec.Name, raw)
	}
	return value, nil
}

// UnwrapQuotes strips one pair of quotes from a string literal.
// Single, double and backtick quotes are accepted; a template literal with
// interpolation is not a literal. Escape sequences are decoded as in
// JavaScript; a malformed one makes the argument non-literal. ok is false
// for anything else.
func UnwrapQuotes(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if len(s) < 2 {
		return "", false
	}

	quote := s[0]
	if quote != '\'' && quote != '"' && quote != '`' {
		return "", false
	}
	if s[len(s)-1] != quote {
		return "", false
	}

	inner := s[1 : len(s)-1]
	if quote == '`' && strings.Contains(inner, "${") {
		return "", false
	}

	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case c == '\\':
			r, n, ok := decodeEscape(inner[i+1:])
			if !ok {
				return "", false
			}
			if r >= 0 {
				b.WriteRune(r)
			}
			i += n
		case c == quote:
			// 'a' + 'b' is an expression, not a literal
			return "", false
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), true
}

var simpleEscapes = map[byte]rune{
	'n': '\n', 't': '\t', 'r': '\r', 'b': '\b', 'f': '\f', 'v': '\v',
	'0': 0, '\\': '\\', '\'': '\'', '"': '"', '`': '`',
}

// decodeEscape decodes the escape sequence following a backslash.
// It returns the rune (-1 for a line continuation) and the number of bytes
// consumed after the backslash; ok is false for a malformed sequence.
func decodeEscape(s string) (rune, int, bool) {
	if s == "" {
		return 0, 0, false
	}
	c := s[0]
	if esc, ok := simpleEscapes[c]; ok {
		if c == '0' && len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
			// legacy octal escapes are not allowed in literals
			return 0, 0, false
		}
		return esc, 1, true
	}

	switch c {
	case '\n':
		return -1, 1, true
	case '\r':
		if strings.HasPrefix(s, "\r\n") {
			return -1, 2, true
		}
		return -1, 1, true
	case 'x':
		return hexEscape(s[1:], 2, 1)
	case 'u':
		if strings.HasPrefix(s, "u{") {
			end := strings.IndexByte(s, '}')
			if end < 3 {
				return 0, 0, false
			}
			v, err := strconv.ParseUint(s[2:end], 16, 32)
			if err != nil || v > utf8.MaxRune {
				return 0, 0, false
			}
			return rune(v), end + 1, true
		}
		r, n, ok := hexEscape(s[1:], 4, 1)
		if !ok {
			return 0, 0, false
		}
		// \uD83D\uDE00 is one code point written as a surrogate pair
		if utf16.IsSurrogate(r) && strings.HasPrefix(s[n:], "\\u") {
			if lo, m, ok := hexEscape(s[n+2:], 4, 0); ok {
				if pair := utf16.DecodeRune(r, lo); pair != utf8.RuneError {
					return pair, n + 2 + m, true
				}
			}
		}
		return r, n, true
	}

	if c >= '1' && c <= '9' {
		return 0, 0, false
	}
	// Any other escaped character stands for itself
	r, size := utf8.DecodeRuneInString(s)
	return r, size, true
}

// hexEscape reads exactly digits hex digits from s. consumed is added to
// the returned length for the escape letter preceding them.
func hexEscape(s string, digits, consumed int) (rune, int, bool) {
	if len(s) < digits {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[:digits], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), digits + consumed, true
}

// JoinPath concatenates URL path parts with single slashes.
// The result starts with a slash (or a scheme and host) and has no trailing slash.
func JoinPath(parts ...string) string {
	var (
		prefix   string
		segments []string
	)

	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == 0 {
			if idx := strings.Index(p, "://"); idx >= 0 {
				host, rest, _ := strings.Cut(p[idx+3:], "/")
				prefix = p[:idx+3] + host
				p = rest
			}
		}
		for _, seg := range strings.Split(p, "/") {
			if seg != "" {
				segments = append(segments, seg)
			}
		}
	}

	return prefix + "/" + strings.Join(segments, "/")
}
