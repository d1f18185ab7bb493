package synth

import (
	"fmt"
	"strings"

	"nest-sdk-gen/internal/config"
	"nest-sdk-gen/internal/model"
	"nest-sdk-gen/internal/utils"
)

// SkipReason explains why a method produced no client method.
// Skips are expected and never errors.
type SkipReason string

const (
	SkipNone      SkipReason = ""
	SkipNotRoute  SkipReason = "no HTTP verb decorator"
	SkipNotPublic SkipReason = "not public"
	SkipStatic    SkipReason = "static method"
	SkipExcluded  SkipReason = "excluded by configuration"
)

// Body is the synthesized implementation of one client method
type Body struct {
	Route        Route
	Params       []FilteredParam // signature parameters, in declaration order
	PathParams   []string        // placeholder names, in template order
	QueryKeys    []string        // query keys; "..." + name for spread objects
	BodyParam    string          // name of the payload parameter
	ResponseType string
	Statements   []string
}

// Synthesizer turns handler descriptors into client method bodies
type Synthesizer struct {
	whitelist     []string
	drop          bool
	skipDecorator string
	excluded      func(controller, method string) bool
}

// New creates a Synthesizer for the resolved configuration
func New(cfg *config.Config) *Synthesizer {
	return &Synthesizer{
		whitelist:     cfg.WhiteListDecorators,
		drop:          cfg.DropUnsupportedParams(),
		skipDecorator: cfg.SkipDecorator,
		excluded:      cfg.IsExcluded,
	}
}

// FilterParams applies the whitelist and the unsupported-parameter policy
func (s *Synthesizer) FilterParams(params []model.Parameter) []FilteredParam {
	return classifyParameters(params, s.whitelist, s.drop)
}

// BuildBody synthesizes the statements of the client method for m.
// A non-empty SkipReason means the method must not be emitted; errors are
// returned as *Error.
func (s *Synthesizer) BuildBody(controller, baseURL string, m *model.Method) (*Body, SkipReason, error) {
	if !m.Visibility.IsPublic() {
		return nil, SkipNotPublic, nil
	}
	if m.Static {
		return nil, SkipStatic, nil
	}
	if s.excluded(controller, m.Name) || (s.skipDecorator != "" && m.HasDecorator(s.skipDecorator)) {
		return nil, SkipExcluded, nil
	}

	fail := func(err error) (*Body, SkipReason, error) {
		return nil, SkipNone, &Error{Controller: controller, Method: m.Name, Err: err}
	}

	route, ok, err := ClassifyRoute(baseURL, m)
	if err != nil {
		return fail(err)
	}
	if !ok {
		return nil, SkipNotRoute, nil
	}

	body := &Body{
		Route:        route,
		Params:       s.FilterParams(m.Params),
		ResponseType: ResponseType(m.ReturnType),
	}

	url, err := body.buildURL()
	if err != nil {
		return fail(err)
	}
	body.Statements = append(body.Statements, url)

	if query := body.buildQuery(); query != "" {
		body.Statements = append(body.Statements, query)
	}

	payload, err := body.selectPayload()
	if err != nil {
		return fail(err)
	}

	body.Statements = append(body.Statements, body.buildCall(payload))
	return body, SkipNone, nil
}

// buildURL interpolates path parameters into the route template
func (b *Body) buildURL() (string, error) {
	bindings := make(map[string]string)
	var order []string
	for _, p := range b.Params {
		if p.Role != RolePath {
			continue
		}
		if _, dup := bindings[p.Key]; dup {
			return "", fmt.Errorf("%w: path parameter %q is bound twice", ErrUnresolvedPlaceholder, p.Key)
		}
		bindings[p.Key] = p.Name
		order = append(order, p.Key)
	}

	var tpl strings.Builder
	used := make(map[string]bool)
	parts, err := splitTemplate(b.Route.Path)
	if err != nil {
		return "", err
	}
	for _, part := range parts {
		if !part.placeholder {
			tpl.WriteString(escapeTemplateText(part.text))
			continue
		}
		name, ok := bindings[part.text]
		if !ok {
			return "", fmt.Errorf("%w: {%s} in %s has no @Param parameter", ErrUnresolvedPlaceholder, part.text, b.Route.Path)
		}
		used[part.text] = true
		b.PathParams = append(b.PathParams, part.text)
		tpl.WriteString("${" + name + "}")
	}

	for _, key := range order {
		if !used[key] {
			return "", fmt.Errorf("%w: @Param %q has no placeholder in %s", ErrUnresolvedPlaceholder, key, b.Route.Path)
		}
	}

	return "const url = `" + tpl.String() + "`;", nil
}

// buildQuery returns the query object statement, or "" without query parameters
func (b *Body) buildQuery() string {
	var entries []string
	for _, p := range b.Params {
		if p.Role != RoleQuery {
			continue
		}
		switch {
		case p.Spread:
			entries = append(entries, "..."+p.Name)
			b.QueryKeys = append(b.QueryKeys, "..."+p.Name)
		case p.Key == p.Name:
			entries = append(entries, p.Name)
			b.QueryKeys = append(b.QueryKeys, p.Key)
		default:
			entries = append(entries, utils.PropertyKey(p.Key)+": "+p.Name)
			b.QueryKeys = append(b.QueryKeys, p.Key)
		}
	}
	if len(entries) == 0 {
		return ""
	}
	return "const query = { " + strings.Join(entries, ", ") + " };"
}

// selectPayload returns the payload expression, or "" without a body parameter
func (b *Body) selectPayload() (string, error) {
	var found *FilteredParam
	for i := range b.Params {
		p := &b.Params[i]
		if p.Role != RoleBody {
			continue
		}
		if found != nil {
			return "", fmt.Errorf("%w: %s and %s", ErrMultipleBodies, found.Name, p.Name)
		}
		found = p
	}
	if found == nil {
		return "", nil
	}

	b.BodyParam = found.Name
	if found.Spread {
		return found.Name, nil
	}
	// @Body('field') value sends { field: value }
	if found.Key == found.Name {
		return "{ " + found.Name + " }", nil
	}
	return "{ " + utils.PropertyKey(found.Key) + ": " + found.Name + " }", nil
}

// buildCall emits the transport call
func (b *Body) buildCall(payload string) string {
	var options []string
	if len(b.QueryKeys) > 0 {
		options = append(options, "query")
	}
	switch payload {
	case "":
	case "body":
		options = append(options, "body")
	default:
		options = append(options, "body: "+payload)
	}

	typeArg := ""
	if b.ResponseType != "" {
		typeArg = "<" + b.ResponseType + ">"
	}

	call := "return this.request" + typeArg + "('" + string(b.Route.Verb) + "', url"
	if len(options) > 0 {
		call += ", { " + strings.Join(options, ", ") + " }"
	}
	return call + ");"
}

type templatePart struct {
	text        string
	placeholder bool
}

// splitTemplate separates static text from {name} and :name placeholders.
// A colon placeholder starts a path segment or follows a "-" or "." inside
// one, as in /:from-:to or /:name.:ext. Modifiers (:id? :id* :id+) are
// rejected.
func splitTemplate(path string) ([]templatePart, error) {
	var (
		parts []templatePart
		text  strings.Builder
	)

	flush := func() {
		if text.Len() > 0 {
			parts = append(parts, templatePart{text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case c == '{':
			end := strings.IndexByte(path[i:], '}')
			if end > 1 && isPlaceholderName(path[i+1:i+end]) {
				flush()
				parts = append(parts, templatePart{text: path[i+1 : i+end], placeholder: true})
				i += end
				continue
			}
		case c == ':' && (i == 0 || strings.IndexByte("/-.", path[i-1]) >= 0):
			j := i + 1
			for j < len(path) && isNameByte(path[j]) {
				j++
			}
			if j > i+1 {
				if j < len(path) && strings.IndexByte("?*+", path[j]) >= 0 {
					return nil, fmt.Errorf("%w: %s in %s", ErrPlaceholderModifier, path[i:j+1], path)
				}
				flush()
				parts = append(parts, templatePart{text: path[i+1 : j], placeholder: true})
				i = j - 1
				continue
			}
		}
		text.WriteByte(c)
	}
	flush()

	return parts, nil
}

func isPlaceholderName(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isNameByte(s[i]) {
			return false
		}
	}
	return s != ""
}

func isNameByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// escapeTemplateText escapes static text for a template literal
func escapeTemplateText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	return strings.ReplaceAll(s, "${", `\${`)
}

// ResponseType derives the client response type from a handler return type.
// Promise<T> and Observable<T> are unwrapped; void, any and unknown
// return types yield "".
func ResponseType(returnType string) string {
	t := strings.TrimSpace(returnType)
	for {
		inner, ok := unwrapGeneric(t, "Promise")
		if !ok {
			inner, ok = unwrapGeneric(t, "Observable")
		}
		if !ok {
			break
		}
		t = inner
	}

	switch t {
	case "", "void", "any", "unknown":
		return ""
	}
	return t
}

// unwrapGeneric returns T for name<T> when the whole string is that one type
func unwrapGeneric(t, name string) (string, bool) {
	if !strings.HasPrefix(t, name+"<") || !strings.HasSuffix(t, ">") {
		return "", false
	}

	depth := 0
	for i := len(name); i < len(t); i++ {
		switch t[i] {
		case '<':
			depth++
		case '>':
			if t[i-1] == '=' {
				continue // arrow function type
			}
			depth--
			if depth == 0 && i != len(t)-1 {
				return "", false // Promise<A> | Promise<B>
			}
		}
	}
	if depth != 0 {
		return "", false
	}
	return strings.TrimSpace(t[len(name)+1 : len(t)-1]), true
}
