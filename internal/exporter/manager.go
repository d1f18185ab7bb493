package exporter

import (
	"strings"

	"nest-sdk-gen/internal/exporter/html"
	"nest-sdk-gen/internal/exporter/openapi"
	"nest-sdk-gen/internal/exporter/word"
)

// GetExporters returns one Exporter per requested report format.
// Aliases collapse to the same exporter; unknown formats are ignored.
func GetExporters(formats []string, wordTemplate string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = canonicalFormat(fmtStr)
		if fmtStr == "" || seen[fmtStr] {
			continue
		}
		seen[fmtStr] = true

		switch fmtStr {
		case "excel":
			exporters = append(exporters, NewExcelExporter())
		case "html":
			exporters = append(exporters, html.NewHTMLExporter())
		case "word":
			exporters = append(exporters, word.NewWordExporter(wordTemplate))
		case "openapi":
			exporters = append(exporters, openapi.NewOpenAPIExporter())
		}
	}

	return exporters
}

func canonicalFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "excel", "xlsx":
		return "excel"
	case "word", "docx":
		return "word"
	case "openapi", "json":
		return "openapi"
	case "html":
		return "html"
	}
	return ""
}
