package openapi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"nest-sdk-gen/internal/config"
	"nest-sdk-gen/internal/exporter/common"
	"nest-sdk-gen/internal/model"

	"github.com/getkin/kin-openapi/openapi3"
)

// FileName is the manifest written into the output directory
const FileName = "openapi.json"

// OpenAPIExporter writes the route manifest of the generated clients
type OpenAPIExporter struct {
	// Stateless
}

func NewOpenAPIExporter() *OpenAPIExporter {
	return &OpenAPIExporter{}
}

func (b *OpenAPIExporter) Export(summary *model.Summary, files []*model.ClientFile, cfg *config.Config) error {
	doc := Build(summary, files)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}
	return os.WriteFile(filepath.Join(cfg.OutputDir(), FileName), append(data, '\n'), 0644)
}

// Build assembles the OpenAPI document for the generated methods.
// Skipped handlers are not part of the manifest.
func Build(summary *model.Summary, files []*model.ClientFile) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "nest-sdk-gen client routes",
			Version:     "1.0.0",
			Description: "Routes covered by the generated Angular clients",
		},
		Paths: openapi3.NewPaths(),
	}
	if summary != nil && summary.APIBase != "" {
		doc.Info.Description += " (API base " + summary.APIBase + ")"
	}

	for _, f := range common.SortFiles(files) {
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: f.Controller})
		for i := range f.Methods {
			addOperation(doc, f, &f.Methods[i])
		}
	}
	return doc
}

func addOperation(doc *openapi3.T, f *model.ClientFile, m *model.ClientMethod) {
	path := OpenAPIPath(m.Route.Path)

	item := doc.Paths.Value(path)
	if item == nil {
		item = &openapi3.PathItem{}
		doc.Paths.Set(path, item)
	}

	op := openapi3.NewOperation()
	op.OperationID = f.ClassName + "_" + m.Name
	op.Summary = m.Name
	op.Tags = []string{f.Controller}

	types := paramTypes(m)
	for _, name := range m.Route.PathParams {
		op.AddParameter(openapi3.NewPathParameter(name).WithSchema(SchemaFor(types[name])))
	}
	for _, key := range m.Route.QueryKeys {
		if strings.HasPrefix(key, "...") {
			continue
		}
		op.AddParameter(openapi3.NewQueryParameter(key).WithSchema(SchemaFor(types[key])))
	}

	if m.Route.BodyParam != "" {
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchema(SchemaFor(types[m.Route.BodyParam])),
		}
	}

	response := openapi3.NewResponse().WithDescription("Successful response")
	if m.ResponseType != "" {
		response = response.WithJSONSchema(SchemaFor(m.ResponseType))
	}
	op.Responses = openapi3.NewResponses(openapi3.WithStatus(200, &openapi3.ResponseRef{Value: response}))

	item.SetOperation(m.Route.Verb, op)
}

func paramTypes(m *model.ClientMethod) map[string]string {
	types := make(map[string]string, len(m.Params))
	for _, p := range m.Params {
		types[p.Name] = p.Type
	}
	return types
}

// OpenAPIPath converts ":name" placeholders to "{name}" and ensures a leading slash
func OpenAPIPath(p string) string {
	out := colonPlaceholder.ReplaceAllString(p, "${1}{${2}}")
	if !strings.HasPrefix(out, "/") {
		out = "/" + out
	}
	return out
}

// colonPlaceholder matches :name at a segment start or after "-" or "."
var colonPlaceholder = regexp.MustCompile(`(^|[/.-]):([A-Za-z0-9_$]+)`)

// SchemaFor maps a TypeScript type to a JSON schema
func SchemaFor(tsType string) *openapi3.Schema {
	t := strings.TrimSpace(tsType)

	switch {
	case t == "":
		return openapi3.NewStringSchema()
	case strings.HasSuffix(t, "[]"):
		return openapi3.NewArraySchema().WithItems(SchemaFor(strings.TrimSuffix(t, "[]")))
	case strings.HasPrefix(t, "Array<") && strings.HasSuffix(t, ">"):
		return openapi3.NewArraySchema().WithItems(SchemaFor(t[len("Array<") : len(t)-1]))
	}

	switch t {
	case "string":
		return openapi3.NewStringSchema()
	case "number":
		return openapi3.NewFloat64Schema()
	case "boolean":
		return openapi3.NewBoolSchema()
	case "Date":
		return openapi3.NewDateTimeSchema()
	}

	schema := openapi3.NewObjectSchema()
	schema.Title = t
	return schema
}
