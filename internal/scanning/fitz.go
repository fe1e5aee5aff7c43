package scanning

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// Fitz implements TextExtractor with MuPDF through go-fitz
type Fitz struct{}

// NewFitz creates a new Fitz extractor
func NewFitz() *Fitz {
	return &Fitz{}
}

// ExtractText reads the text layer of every page
func (f *Fitz) ExtractText(pdfData []byte) (string, error) {
	if !IsPDF(pdfData) {
		return "", ErrNotPDF
	}

	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", n+1, err)
		}
		pages = append(pages, text)
	}

	return joinPages(pages), nil
}

// Close is a no-op; documents are closed after each extraction
func (f *Fitz) Close() error {
	return nil
}
