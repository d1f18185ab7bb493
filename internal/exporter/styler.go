package exporter

import (
	"nest-sdk-gen/internal/exporter/common"

	"github.com/xuri/excelize/v2"
)

// Styler handles Excel styling
type Styler struct {
	File *excelize.File

	// Pre-defined styles
	HeaderStyle     int
	ControllerStyle int
	ReadStyle       int // GET, HEAD, OPTIONS
	WriteStyle      int // POST, PUT, PATCH
	DeleteStyle     int
	SkippedStyle    int
	DefaultStyle    int
}

// NewStyler creates a new Styler and explicitly registers styles
func NewStyler(f *excelize.File) (*Styler, error) {
	s := &Styler{File: f}

	styles := []struct {
		target *int
		style  *excelize.Style
	}{
		// Header: bold on gray, centered
		{&s.HeaderStyle, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#000000"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}},
		{&s.ControllerStyle, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#0000FF"},
			Alignment: &excelize.Alignment{Vertical: "center"},
		}},
		{&s.ReadStyle, &excelize.Style{
			Font:      &excelize.Font{Color: "#2E7D32"},
			Alignment: &excelize.Alignment{Vertical: "center"},
		}},
		{&s.WriteStyle, &excelize.Style{
			Font:      &excelize.Font{Color: "#1565C0"},
			Alignment: &excelize.Alignment{Vertical: "center"},
		}},
		{&s.DeleteStyle, &excelize.Style{
			Font:      &excelize.Font{Color: "#D32F2F"},
			Alignment: &excelize.Alignment{Vertical: "center"},
		}},
		{&s.SkippedStyle, &excelize.Style{
			Font:      &excelize.Font{Color: "#757575", Italic: true},
			Alignment: &excelize.Alignment{Vertical: "center"},
		}},
		{&s.DefaultStyle, &excelize.Style{
			Alignment: &excelize.Alignment{Vertical: "center"},
		}},
	}

	for _, st := range styles {
		st.style.Border = createBorder()
		id, err := f.NewStyle(st.style)
		if err != nil {
			return nil, err
		}
		*st.target = id
	}

	return s, nil
}

// RowStyle picks the style of a Routes sheet row
func (s *Styler) RowStyle(r common.Row) int {
	if r.Status == common.StatusSkipped {
		return s.SkippedStyle
	}
	switch r.Verb {
	case "GET", "HEAD", "OPTIONS":
		return s.ReadStyle
	case "POST", "PUT", "PATCH":
		return s.WriteStyle
	case "DELETE":
		return s.DeleteStyle
	}
	return s.DefaultStyle
}

func createBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "D4D4D4", Style: 1},
		{Type: "top", Color: "D4D4D4", Style: 1},
		{Type: "bottom", Color: "D4D4D4", Style: 1},
		{Type: "right", Color: "D4D4D4", Style: 1},
	}
}
