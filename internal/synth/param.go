package synth

import (
	"slices"
	"strings"

	"nest-sdk-gen/internal/model"
)

// Role is the transport destination of a parameter
type Role int

const (
	RoleNone Role = iota
	RolePath
	RoleQuery
	RoleBody
)

func (r Role) String() string {
	switch r {
	case RolePath:
		return "path"
	case RoleQuery:
		return "query"
	case RoleBody:
		return "body"
	default:
		return "none"
	}
}

// roleOf maps a parameter decorator name to its role
func roleOf(decorator string) Role {
	switch decorator {
	case "Param":
		return RolePath
	case "Query":
		return RoleQuery
	case "Body":
		return RoleBody
	default:
		return RoleNone
	}
}

// FilteredParam is a parameter after whitelist filtering
type FilteredParam struct {
	Name       string
	Type       string
	Optional   bool
	Decorators []model.Decorator // retained decorators, in source order
	Role       Role

	// Key is the wire name: the placeholder for path parameters, the query
	// key or the payload field. Empty when Spread is set.
	Key string
	// Spread marks an unnamed @Query() or @Body() bound to the whole object
	Spread bool
	// Stripped marks a parameter whose decorators were all removed
	Stripped bool
}

// ClientParam returns the decorator-free signature parameter
func (p FilteredParam) ClientParam() model.ClientParam {
	return model.ClientParam{Name: p.Name, Type: p.Type, Optional: p.Optional}
}

// ClassifyParameter keeps the decorators of p named in whitelist and
// infers the transport role from them. The first role-bearing decorator wins.
func ClassifyParameter(p model.Parameter, whitelist []string) FilteredParam {
	fp := FilteredParam{
		Name:     p.Name,
		Type:     p.Type,
		Optional: p.Optional,
	}

	for _, dec := range p.Decorators {
		if !slices.Contains(whitelist, dec.Name) {
			continue
		}
		fp.Decorators = append(fp.Decorators, dec)

		if fp.Role != RoleNone {
			continue
		}
		fp.Role = roleOf(dec.Name)
		if fp.Role == RoleNone {
			continue
		}

		// @Param('id', ParseIntPipe): a literal first argument names the value.
		// @Query(ValidationPipe) on an object type binds the whole object.
		if raw, ok := dec.Arg(0); ok {
			if name, ok := UnwrapQuotes(raw); ok && name != "" {
				fp.Key = name
				continue
			}
		}
		if fp.Role == RolePath || (fp.Role == RoleQuery && isScalarType(p.Type)) {
			fp.Key = p.Name
		} else {
			fp.Spread = true
		}
	}

	fp.Stripped = len(p.Decorators) > 0 && len(fp.Decorators) == 0
	return fp
}

// classifyParameters filters every parameter, removing stripped ones when
// drop is set. Declaration order is preserved.
func classifyParameters(params []model.Parameter, whitelist []string, drop bool) []FilteredParam {
	out := make([]FilteredParam, 0, len(params))
	for _, p := range params {
		fp := ClassifyParameter(p, whitelist)
		if drop && fp.Stripped {
			continue
		}
		out = append(out, fp)
	}
	return out
}

var scalarTypes = map[string]bool{
	"string": true, "number": true, "boolean": true, "bigint": true,
	"null": true, "undefined": true, "true": true, "false": true,
	"Date": true,
}

// isScalarType reports whether a declared type is sent as a single query
// value: primitives, literal types, unions of them and arrays of them.
// An empty type is treated as an object.
func isScalarType(t string) bool {
	t = strings.TrimSpace(t)
	for len(t) > 1 && t[0] == '(' && t[len(t)-1] == ')' && splitUnion(t[1:len(t)-1]) != nil {
		t = strings.TrimSpace(t[1 : len(t)-1])
	}
	members := splitUnion(t)
	if len(members) == 0 {
		return false
	}
	for _, m := range members {
		if !isScalarMember(m) {
			return false
		}
	}
	return true
}

func isScalarMember(m string) bool {
	m = strings.TrimSpace(m)
	for strings.HasSuffix(m, "[]") {
		m = strings.TrimSpace(strings.TrimSuffix(m, "[]"))
	}
	for _, wrapper := range []string{"Array<", "ReadonlyArray<"} {
		if strings.HasPrefix(m, wrapper) && strings.HasSuffix(m, ">") {
			return isScalarType(m[len(wrapper) : len(m)-1])
		}
	}
	if len(m) > 1 && m[0] == '(' && m[len(m)-1] == ')' {
		return isScalarType(m[1 : len(m)-1])
	}
	if m == "" {
		return false
	}
	if scalarTypes[m] {
		return true
	}
	if _, ok := UnwrapQuotes(m); ok {
		return true
	}
	return isNumericLiteral(m)
}

func isNumericLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '.' && c != '_' {
			return false
		}
	}
	return true
}

// splitUnion splits a type on top-level "|". It returns nil when brackets
// are unbalanced.
func splitUnion(t string) []string {
	var (
		parts []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(t); i++ {
		c := t[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(', '<', '[', '{':
			depth++
		case ')', '>', ']', '}':
			depth--
			if depth < 0 {
				return nil
			}
		case '|':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(t[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 || quote != 0 {
		return nil
	}
	parts = append(parts, strings.TrimSpace(t[start:]))
	if parts[0] == "" {
		// leading "| 'a' | 'b'"
		parts = parts[1:]
	}
	return parts
}
