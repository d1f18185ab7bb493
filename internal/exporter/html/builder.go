package html

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"nest-sdk-gen/internal/config"
	"nest-sdk-gen/internal/exporter/common"
	"nest-sdk-gen/internal/model"
)

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// ReportData is the data passed to RouteTableTemplate
type ReportData struct {
	*model.Summary
	Clients []ClientSection
}

// ClientSection groups the rows of one generated client
type ClientSection struct {
	ClassName  string
	FileName   string
	Controller string
	Rows       []common.Row
}

var reportTemplate = template.Must(template.New("route-table").Funcs(template.FuncMap{
	"methodColor": getMethodColor,
}).Parse(RouteTableTemplate))

func (e *HTMLExporter) Export(summary *model.Summary, files []*model.ClientFile, cfg *config.Config) error {
	f, err := os.Create(cfg.ReportPath(".html"))
	if err != nil {
		return err
	}
	defer f.Close()

	return Render(f, summary, files)
}

// Render writes the HTML report to w
func Render(w io.Writer, summary *model.Summary, files []*model.ClientFile) error {
	data := ReportData{Summary: summary}
	for _, f := range common.SortFiles(files) {
		data.Clients = append(data.Clients, ClientSection{
			ClassName:  f.ClassName,
			FileName:   f.FileName,
			Controller: f.Controller,
			Rows:       common.FileRows(f),
		})
	}

	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

// getMethodColor returns CSS color class for HTTP method
func getMethodColor(method string) string {
	switch strings.ToUpper(method) {
	case "GET":
		return "method-get"
	case "POST":
		return "method-post"
	case "PUT":
		return "method-put"
	case "DELETE":
		return "method-delete"
	case "PATCH":
		return "method-patch"
	default:
		return "method-default"
	}
}
