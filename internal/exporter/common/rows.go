package common

import (
	"sort"
	"strings"

	"nest-sdk-gen/internal/model"
)

// Row statuses
const (
	StatusGenerated = "generated"
	StatusSkipped   = "skipped"
)

// Row is one handler of a controller as shown in the reports
type Row struct {
	Controller string
	ClassName  string
	FileName   string
	Method     string
	Verb       string
	Path       string
	PathParams string
	QueryKeys  string
	BodyParam  string
	Response   string
	Status     string
	Reason     string
}

// SortFiles returns the files ordered by service class name.
// The input slice is left untouched.
func SortFiles(files []*model.ClientFile) []*model.ClientFile {
	sorted := append([]*model.ClientFile(nil), files...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].ClassName) < strings.ToLower(sorted[j].ClassName)
	})
	return sorted
}

// Rows flattens the files into report rows: per file, the generated
// methods in declaration order followed by the skipped ones.
func Rows(files []*model.ClientFile) []Row {
	var rows []Row
	for _, f := range SortFiles(files) {
		rows = append(rows, FileRows(f)...)
	}
	return rows
}

// FileRows returns the rows of a single file
func FileRows(f *model.ClientFile) []Row {
	rows := make([]Row, 0, len(f.Methods)+len(f.Skipped))
	for _, m := range f.Methods {
		rows = append(rows, Row{
			Controller: f.Controller,
			ClassName:  f.ClassName,
			FileName:   f.FileName,
			Method:     m.Name,
			Verb:       m.Route.Verb,
			Path:       m.Route.Path,
			PathParams: strings.Join(m.Route.PathParams, ", "),
			QueryKeys:  strings.Join(m.Route.QueryKeys, ", "),
			BodyParam:  m.Route.BodyParam,
			Response:   responseOrAny(m.ResponseType),
			Status:     StatusGenerated,
		})
	}
	for _, s := range f.Skipped {
		rows = append(rows, Row{
			Controller: f.Controller,
			ClassName:  f.ClassName,
			FileName:   f.FileName,
			Method:     s.Name,
			Status:     StatusSkipped,
			Reason:     s.Reason,
		})
	}
	return rows
}

func responseOrAny(t string) string {
	if t == "" {
		return "any"
	}
	return t
}
