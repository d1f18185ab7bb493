//go:build ignore

// verify_report checks a generated report workbook: every Routes row names
// its controller and method, and every generated row has a verb and a path.
//
//	go run scripts/verify_report.go client/src/app/api/nest-sdk-gen-report.xlsx
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

func main() {
	filename := "nest-sdk-gen-report.xlsx"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Routes")
	if err != nil {
		log.Fatal(err)
	}

	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var problems int
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		status := cell(row, 8)
		switch {
		case cell(row, 0) == "" || cell(row, 1) == "":
			fmt.Printf("Row %d: missing controller or method: %v\n", i+1, row)
			problems++
		case status == "generated" && (cell(row, 2) == "" || cell(row, 3) == ""):
			fmt.Printf("Row %d: generated method without verb or path: %v\n", i+1, row)
			problems++
		case status != "generated" && !strings.HasPrefix(status, "skipped"):
			fmt.Printf("Row %d: unknown status %q\n", i+1, status)
			problems++
		}
	}

	if problems > 0 {
		fmt.Printf("%d problems in %d rows\n", problems, len(rows)-1)
		os.Exit(1)
	}
	fmt.Printf("OK: %d rows verified\n", len(rows)-1)
}
