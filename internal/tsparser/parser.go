package tsparser

import (
	"regexp"
	"sort"
	"strings"

	"nest-sdk-gen/internal/logger"
	"nest-sdk-gen/internal/model"
)

// File is the declaration-level view of one TypeScript source file
type File struct {
	Path       string
	Imports    []model.Import
	Classes    []model.Controller // every class declaration, decorated or not
	LocalTypes []string           // classes, interfaces, type aliases and enums declared here
}

// Controllers returns the classes carrying the routing decorator, each
// annotated with the file's imports and local types
func (f *File) Controllers() []model.Controller {
	var controllers []model.Controller
	for _, cls := range f.Classes {
		if !cls.IsController() {
			continue
		}
		cls.File = f.Path
		cls.Imports = f.Imports
		cls.LocalTypes = f.LocalTypes
		controllers = append(controllers, cls)
	}
	return controllers
}

// ParseFile parses TypeScript source text.
// It understands declarations only: statements and method bodies are skipped.
func ParseFile(path, content string) (*File, error) {
	src := StripComments(content)

	file := &File{
		Path:    path,
		Imports: extractImports(src),
	}

	p := &fileParser{file: file, src: src}
	p.parseTopLevel()

	sort.Strings(file.LocalTypes)
	logger.Debug("[PARSER] %s: %d imports, %d classes", path, len(file.Imports), len(file.Classes))
	return file, nil
}

var importRegex = regexp.MustCompile(`(?s)\bimport\s+(?:type\s+)?([^;'"]*?)\s*\bfrom\s*['"]([^'"]+)['"]`)

// extractImports parses every import declaration with a binding clause
func extractImports(src string) []model.Import {
	var imports []model.Import

	for _, m := range importRegex.FindAllStringSubmatch(src, -1) {
		imp := model.Import{Module: m[2]}
		clause := strings.TrimSpace(m[1])

		if open := strings.Index(clause, "{"); open >= 0 {
			close := strings.LastIndex(clause, "}")
			if close < open {
				close = len(clause)
			}
			imp.Named = parseNamedImports(clause[open+1 : close])
			clause = clause[:open]
		}

		for _, part := range strings.Split(clause, ",") {
			part = strings.TrimSpace(part)
			switch {
			case part == "":
			case strings.HasPrefix(part, "*"):
				imp.Namespace = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part[1:]), "as"))
			default:
				imp.Default = part
			}
		}

		imports = append(imports, imp)
	}

	return imports
}

// parseNamedImports parses "A, type B, C as D"
func parseNamedImports(list string) []model.ImportSpecifier {
	var specs []model.ImportSpecifier
	for _, entry := range strings.Split(list, ",") {
		fields := strings.Fields(entry)
		if len(fields) > 1 && fields[0] == "type" {
			fields = fields[1:]
		}
		switch {
		case len(fields) == 1:
			specs = append(specs, model.ImportSpecifier{Name: fields[0]})
		case len(fields) == 3 && fields[1] == "as":
			specs = append(specs, model.ImportSpecifier{Name: fields[0], Alias: fields[2]})
		}
	}
	return specs
}

type fileParser struct {
	file *File
	src  string
}

// declarationModifiers may precede a top-level declaration
var declarationModifiers = map[string]bool{
	"export":   true,
	"default":  true,
	"abstract": true,
	"declare":  true,
}

// parseTopLevel walks the top-level statements, collecting decorators and
// class declarations
func (p *fileParser) parseTopLevel() {
	c := newCursor(p.src, 0, len(p.src))
	var pending []model.Decorator

	for {
		c.skipSpace()
		if c.done() {
			return
		}

		char := c.peek()
		switch {
		case char == '@':
			pending = append(pending, parseDecorator(c))
			continue
		case char == ';' || char == '}' || char == ')' || char == ']':
			c.pos++
			continue
		case isQuote(char):
			c.skipString()
			pending = nil
			continue
		case char == '{' || char == '(' || char == '[':
			c.skipBalanced()
			pending = nil
			continue
		}

		word := c.readIdent()
		if word == "" {
			c.pos++
			continue
		}

		switch {
		case declarationModifiers[word]:
			continue
		case word == "class":
			if cls, ok := p.parseClass(c, pending); ok {
				p.file.Classes = append(p.file.Classes, cls)
				p.file.LocalTypes = append(p.file.LocalTypes, cls.Name)
			}
		case word == "interface" || word == "enum":
			c.skipSpace()
			if name := c.readIdent(); name != "" {
				p.file.LocalTypes = append(p.file.LocalTypes, name)
			}
			p.skipToBlock(c)
		case word == "type" && isIdentStart(c.nextNonSpace()):
			c.skipSpace()
			if name := c.readIdent(); name != "" {
				p.file.LocalTypes = append(p.file.LocalTypes, name)
			}
			c.skipStatement()
		case word == "import":
			c.skipStatement()
		default:
			c.skipStatement()
		}
		pending = nil
	}
}

// parseClass parses "class Name ... { body }" after the class keyword
func (p *fileParser) parseClass(c *cursor, decorators []model.Decorator) (model.Controller, bool) {
	c.skipSpace()
	cls := model.Controller{
		Name:       c.readIdent(),
		Decorators: decorators,
	}

	// heritage clauses: extends Base<T> implements Other
	for !c.done() && c.peek() != '{' {
		switch char := c.peek(); {
		case char == '(' || char == '[':
			c.skipBalanced()
		case char == '<':
			c.pos = skipAngles(c.src, c.pos, c.end)
		default:
			c.pos++
		}
	}
	if c.done() {
		return cls, false
	}

	open := c.pos
	close := findClosing(c.src, open+1, c.end, '{')
	c.pos = close

	if cls.Name == "" {
		// anonymous default export
		return cls, false
	}

	cls.Methods = parseClassBody(p.src, open+1, close-1)
	return cls, true
}

// skipToBlock skips a declaration up to and including its { } block
func (p *fileParser) skipToBlock(c *cursor) {
	for !c.done() && c.peek() != '{' {
		if c.peek() == '<' {
			c.pos = skipAngles(c.src, c.pos, c.end)
			continue
		}
		c.pos++
	}
	if !c.done() {
		c.skipBalanced()
	}
}

// parseDecorator parses @Name or @Name(args) at the cursor.
// For namespaced decorators (@common.Get) the last segment is the name.
func parseDecorator(c *cursor) model.Decorator {
	c.pos++ // @
	name := c.readIdent()
	for c.peek() == '.' {
		c.pos++
		name = c.readIdent()
	}

	dec := model.Decorator{Name: name}
	if c.nextNonSpace() == '(' {
		c.skipSpace()
		inner := c.skipBalanced()
		for _, arg := range splitTopLevel(inner, ',') {
			if arg != "" {
				dec.Args = append(dec.Args, arg)
			}
		}
	}
	return dec
}

// skipAngles returns the index just past the generic parameter list at start
func skipAngles(src string, start, end int) int {
	depth := 0
	for i := start; i < end; i++ {
		switch char := src[i]; {
		case isQuote(char):
			i = skipString(src, i, end) - 1
		case char == '(' || char == '[' || char == '{':
			i = findClosing(src, i+1, end, char) - 1
		case char == '<':
			depth++
		case char == '>':
			if i > 0 && src[i-1] == '=' {
				continue
			}
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return end
}

func isIdentStart(char byte) bool {
	return isIdentByte(char, true)
}
