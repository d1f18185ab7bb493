package exporter

import (
	"fmt"

	"nest-sdk-gen/internal/config"
	"nest-sdk-gen/internal/exporter/common"
	"nest-sdk-gen/internal/model"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the generation report
const (
	OverviewSheet = "Overview"
	RoutesSheet   = "Routes"
)

// ExcelExporter writes the generation report workbook
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export generates the Excel report
func (e *ExcelExporter) Export(summary *model.Summary, files []*model.ClientFile, cfg *config.Config) error {
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	if err := e.writeOverview(f, styler, summary, files); err != nil {
		return err
	}
	if err := e.writeRoutes(f, styler, files); err != nil {
		return err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}
	if idx, err := f.GetSheetIndex(OverviewSheet); err == nil {
		f.SetActiveSheet(idx)
	}

	return f.SaveAs(cfg.ReportPath(".xlsx"))
}

// --- Overview Sheet Logic ---

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, summary *model.Summary, files []*model.ClientFile) error {
	sheet := OverviewSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	row := 1
	e.writeRow(f, sheet, row, []string{"Metric", "Value"}, s.HeaderStyle)
	row++

	metrics := []struct {
		Key string
		Val any
	}{
		{"Generated", summary.GeneratedDate},
		{"API Base", summary.APIBase},
		{"Controllers", summary.TotalControllers},
		{"Generated Methods", summary.TotalRoutes},
		{"Skipped Handlers", summary.TotalSkipped},
	}
	for _, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Val)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
		row++
	}

	row += 2 // Spacer

	e.writeRow(f, sheet, row, []string{"No", "Controller", "Client Class", "File", "Methods", "Skipped"}, s.HeaderStyle)
	row++

	for i, file := range common.SortFiles(files) {
		values := []any{i + 1, file.Controller, file.ClassName, file.FileName, len(file.Methods), len(file.Skipped)}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, val)
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), s.ControllerStyle)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "D", 32)
	return nil
}

// --- Routes Sheet Logic ---

func (e *ExcelExporter) writeRoutes(f *excelize.File, s *Styler, files []*model.ClientFile) error {
	sheet := RoutesSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Controller", "Method", "Verb", "Path", "Path Params", "Query Keys", "Body", "Response", "Status"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	row := 2
	for _, r := range common.Rows(files) {
		status := r.Status
		if r.Reason != "" {
			status += ": " + r.Reason
		}
		values := []string{r.Controller, r.Method, r.Verb, r.Path, r.PathParams, r.QueryKeys, r.BodyParam, r.Response, status}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, val)
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("I%d", row), s.RowStyle(r))
		row++
	}

	f.SetColWidth(sheet, "A", "B", 28)
	f.SetColWidth(sheet, "C", "C", 10)
	f.SetColWidth(sheet, "D", "D", 40)
	f.SetColWidth(sheet, "E", "H", 24)
	f.SetColWidth(sheet, "I", "I", 30)
	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}
