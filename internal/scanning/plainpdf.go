package scanning

import (
	"bytes"
	"fmt"

	"github.com/dslipak/pdf"
)

// PlainPDF implements TextExtractor with a pure Go PDF reader. It needs no
// MuPDF but is less tolerant of unusual text encodings.
type PlainPDF struct{}

// NewPlainPDF creates a new PlainPDF extractor
func NewPlainPDF() *PlainPDF {
	return &PlainPDF{}
}

// ExtractText reads the plain text of every page
func (p *PlainPDF) ExtractText(pdfData []byte) (text string, err error) {
	if !IsPDF(pdfData) {
		return "", ErrNotPDF
	}

	// the reader panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("reading PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", n, err)
		}
		pages = append(pages, pageText)
	}

	return joinPages(pages), nil
}

// Close is a no-op for PlainPDF
func (p *PlainPDF) Close() error {
	return nil
}
