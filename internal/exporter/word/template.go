package word

import (
	"archive/zip"
	"io"
)

// Placeholders replaced in the report template
const (
	PlaceholderDate        = "{{Date}}"
	PlaceholderAPIBase     = "{{APIBase}}"
	PlaceholderControllers = "{{TotalControllers}}"
	PlaceholderRoutes      = "{{TotalRoutes}}"
	PlaceholderSkipped     = "{{TotalSkipped}}"
	PlaceholderContent     = "{{Content}}"
)

var templateParts = []struct {
	name    string
	content string
}{
	{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`},
	{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`},
	// Required by some parsers
	{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`},
	{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>nest-sdk-gen Client Report</w:t></w:r></w:p>
<w:p><w:r><w:t>Date: ` + PlaceholderDate + `</w:t></w:r></w:p>
<w:p><w:r><w:t>API Base: ` + PlaceholderAPIBase + `</w:t></w:r></w:p>
<w:p><w:r><w:t>Controllers: ` + PlaceholderControllers + `</w:t></w:r></w:p>
<w:p><w:r><w:t>Generated Methods: ` + PlaceholderRoutes + `</w:t></w:r></w:p>
<w:p><w:r><w:t>Skipped Handlers: ` + PlaceholderSkipped + `</w:t></w:r></w:p>
<w:p><w:r><w:t>` + PlaceholderContent + `</w:t></w:r></w:p>
</w:body>
</w:document>`},
}

// WriteTemplate writes the minimal report template with its placeholders.
// Each placeholder sits in a single run so plain text replacement works.
func WriteTemplate(out io.Writer) error {
	w := zip.NewWriter(out)
	for _, part := range templateParts {
		f, err := w.Create(part.name)
		if err != nil {
			return err
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return err
		}
	}
	return w.Close()
}
