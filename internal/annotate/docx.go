package annotate

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"pubcheck/internal/model"
)

// The annotated copy is a minimal OOXML package: content types, package
// relationships, and word/document.xml. Error segments get a yellow
// highlight, foreign segments italics; both can apply to one run.

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>`

const documentFooter = `</w:body>
</w:document>`

// WriteDocx writes the annotated copy of a document: one w:p per input
// paragraph, in input order, runs built from Annotate segments.
func WriteDocx(path string, paragraphs []model.Paragraph, findings []model.Finding) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	zw := zip.NewWriter(f)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", buildDocumentXML(paragraphs, findings)},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("create zip entry %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			return fmt.Errorf("write zip entry %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize docx: %w", err)
	}
	return nil
}

// buildDocumentXML renders the document body. Whitespace runs keep
// xml:space="preserve" so the original spacing survives a round trip
// through Word.
func buildDocumentXML(paragraphs []model.Paragraph, findings []model.Finding) string {
	byIndex := map[int]model.Finding{}
	for _, f := range findings {
		byIndex[f.Index] = f
	}

	var b strings.Builder
	b.WriteString(documentHeader)
	for _, p := range paragraphs {
		b.WriteString("<w:p>")
		for _, seg := range Annotate(p.Raw, byIndex[p.Index]) {
			writeRun(&b, seg)
		}
		b.WriteString("</w:p>")
	}
	b.WriteString(documentFooter)
	return b.String()
}

func writeRun(b *strings.Builder, seg Segment) {
	b.WriteString("<w:r>")
	if seg.Error || seg.Foreign {
		b.WriteString("<w:rPr>")
		if seg.Foreign {
			b.WriteString("<w:i/>")
		}
		if seg.Error {
			b.WriteString(`<w:highlight w:val="yellow"/>`)
		}
		b.WriteString("</w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	_ = xml.EscapeText(b, []byte(seg.Text))
	b.WriteString("</w:t></w:r>")
}
