// Package extract turns document files into ordered paragraph strings.
// It is the external collaborator of the checking core: the pipeline only
// sees []string, never file formats.
//
// Supported formats:
//   - .pdf   pdfcpu content-stream extraction, page failures tolerated
//   - .docx  word/document.xml from the ZIP archive
//   - .pptx  ppt/slides/slideN.xml, one paragraph per slide
//   - .txt   blank-line-delimited blocks, per-line fallback
//   - .html  visible text of block elements
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
	FormatPptx Format = "pptx"
	FormatTXT  Format = "txt"
	FormatHTML Format = "html"
)

// Detect returns the document format based on file extension.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDocx, nil
	case ".pptx":
		return FormatPptx, nil
	case ".txt", ".text":
		return FormatTXT, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", filepath.Ext(path))
	}
}

// Extract parses a document and returns its paragraphs in document order.
// A corrupt or unreadable file yields an error; the caller reports
// "nothing to check" rather than crashing.
func Extract(ctx context.Context, path string) ([]string, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch format {
	case FormatPDF:
		return extractPDF(path)
	case FormatDocx:
		return extractDocx(path)
	case FormatPptx:
		return extractPptx(path)
	case FormatTXT:
		return extractText(path)
	case FormatHTML:
		return extractHTML(path)
	default:
		return nil, fmt.Errorf("no parser for format: %s", format)
	}
}

// splitParagraphs prefers blank-line-delimited blocks and falls back to one
// paragraph per line when no blank lines exist.
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var paras []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			paras = append(paras, block)
		}
	}
	if len(paras) > 1 {
		return paras
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > 1 {
		return lines
	}
	return paras
}
