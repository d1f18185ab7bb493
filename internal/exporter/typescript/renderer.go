package typescript

import (
	_ "embed"
	"strings"

	"nest-sdk-gen/internal/model"
)

//go:embed base-client.ts
var baseClient []byte

// Header opens every generated client file
const Header = "// Generated by nest-sdk-gen. Do not edit."

const indent = "  "

// BaseClient returns the source of the transport base class
func BaseClient() []byte {
	return append([]byte(nil), baseClient...)
}

// Render renders a client file as TypeScript source.
// The output depends only on file, so equal inputs render byte-identical text.
func Render(file *model.ClientFile) []byte {
	var b strings.Builder

	b.WriteString(Header + "\n")
	for _, imp := range file.Imports {
		b.WriteString(renderImport(imp) + "\n")
	}
	b.WriteString("\n")

	if file.ProvidedIn != "" {
		b.WriteString("@Injectable({ providedIn: " + file.ProvidedIn + " })\n")
	} else {
		b.WriteString("@Injectable()\n")
	}
	b.WriteString("export class " + file.ClassName + " extends BaseClient {\n")
	b.WriteString(indent + "constructor(protected httpClient: HttpClient) {\n")
	b.WriteString(indent + indent + "super();\n")
	b.WriteString(indent + "}\n")

	for _, m := range file.Methods {
		b.WriteString("\n")
		renderMethod(&b, m)
	}

	b.WriteString("}\n")
	return []byte(b.String())
}

func renderImport(imp model.ImportDecl) string {
	var clause []string
	if imp.Default != "" {
		clause = append(clause, imp.Default)
	}
	if imp.Namespace != "" {
		clause = append(clause, "* as "+imp.Namespace)
	}
	if len(imp.Named) > 0 {
		clause = append(clause, "{ "+strings.Join(imp.Named, ", ")+" }")
	}
	return "import " + strings.Join(clause, ", ") + " from '" + imp.Module + "';"
}

// renderMethod writes the overload signatures followed by the implementation.
// With overloads every signature is annotated with its Observable type.
func renderMethod(b *strings.Builder, m model.ClientMethod) {
	annotate := len(m.Overloads) > 0

	for _, o := range m.Overloads {
		b.WriteString(indent + m.Name + "(" + renderParams(o.Params) + ")" + observableOf(o.ResponseType) + ";\n")
	}

	signature := indent + m.Name + "(" + renderParams(m.Params) + ")"
	if annotate {
		signature += observableOf(m.ResponseType)
	}
	b.WriteString(signature + " {\n")
	for _, stmt := range m.Statements {
		b.WriteString(indent + indent + stmt + "\n")
	}
	b.WriteString(indent + "}\n")
}

func observableOf(responseType string) string {
	if responseType == "" {
		responseType = "any"
	}
	return ": Observable<" + responseType + ">"
}

func renderParams(params []model.ClientParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		part := p.Name
		if p.Optional {
			part += "?"
		}
		if p.Type != "" {
			part += ": " + p.Type
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}
