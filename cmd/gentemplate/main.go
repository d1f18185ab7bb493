// Command gentemplate writes the default Word report template, as a
// starting point for a custom -template file.
package main

import (
	"flag"
	"fmt"
	"os"

	"nest-sdk-gen/internal/exporter/word"
)

func main() {
	out := flag.String("o", "template.docx", "Output file")
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := word.WriteTemplate(f); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *out)
}
