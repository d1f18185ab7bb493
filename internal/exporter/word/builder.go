package word

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"nest-sdk-gen/internal/config"
	"nest-sdk-gen/internal/exporter/common"
	"nest-sdk-gen/internal/model"

	"github.com/nguyenthenguyen/docx"
)

type WordExporter struct {
	// TemplatePath is a custom .docx template; empty uses the built-in one
	TemplatePath string
}

func NewWordExporter(templatePath string) *WordExporter {
	return &WordExporter{TemplatePath: templatePath}
}

func (e *WordExporter) Export(summary *model.Summary, files []*model.ClientFile, cfg *config.Config) error {
	templatePath := e.TemplatePath
	if templatePath == "" {
		tmpFile, err := os.CreateTemp("", "nest-sdk-gen-template-*.docx")
		if err != nil {
			return fmt.Errorf("failed to create temp file: %w", err)
		}
		defer os.Remove(tmpFile.Name())

		if err := WriteTemplate(tmpFile); err != nil {
			tmpFile.Close()
			return fmt.Errorf("failed to write template to temp file: %w", err)
		}
		if err := tmpFile.Close(); err != nil {
			return fmt.Errorf("failed to close temp file: %w", err)
		}
		templatePath = tmpFile.Name()
	}

	r, err := docx.ReadDocxFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read docx template %s: %w", templatePath, err)
	}
	defer r.Close()

	doc := r.Editable()

	replacements := []struct{ old, new string }{
		{PlaceholderDate, summary.GeneratedDate},
		{PlaceholderAPIBase, summary.APIBase},
		{PlaceholderControllers, strconv.Itoa(summary.TotalControllers)},
		{PlaceholderRoutes, strconv.Itoa(summary.TotalRoutes)},
		{PlaceholderSkipped, strconv.Itoa(summary.TotalSkipped)},
		{PlaceholderContent, BuildContent(files)},
	}
	for _, rep := range replacements {
		// A template without the placeholder is not an error
		_ = doc.Replace(rep.old, rep.new, -1)
	}

	if err := doc.WriteToFile(cfg.ReportPath(".docx")); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}
	return nil
}

// BuildContent renders the per-client section as plain text.
// The docx library handles XML encoding.
func BuildContent(files []*model.ClientFile) string {
	var sb strings.Builder

	for i, f := range common.SortFiles(files) {
		if i > 0 {
			sb.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
		}
		fmt.Fprintf(&sb, "%s (%s)\n", f.ClassName, f.FileName)
		fmt.Fprintf(&sb, "Controller: %s\n\n", f.Controller)

		fmt.Fprintf(&sb, "%-8s %-40s %-24s %s\n", "Verb", "Path", "Method", "Response")
		sb.WriteString(strings.Repeat("-", 100) + "\n")
		for _, r := range common.FileRows(f) {
			if r.Status == common.StatusSkipped {
				fmt.Fprintf(&sb, "%-8s %-40s %-24s %s\n", "-", "-", truncate(r.Method, 24), "skipped: "+r.Reason)
				continue
			}
			fmt.Fprintf(&sb, "%-8s %-40s %-24s %s\n", r.Verb, truncate(r.Path, 40), truncate(r.Method, 24), r.Response)
		}
	}

	return sb.String()
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
