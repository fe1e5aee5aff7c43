package scanning

import "fmt"

// TextExtractor defines the interface for pulling the text layer out of a PDF
type TextExtractor interface {
	// ExtractText returns the text of every page, pages joined by a newline
	ExtractText(pdfData []byte) (string, error)
	// Close releases resources held by the extractor
	Close() error
}

// Extractor kinds accepted by NewExtractor
const (
	KindFitz = "fitz"
	KindPDF  = "pdf"
)

// NewExtractor creates the TextExtractor registered under kind
func NewExtractor(kind string) (TextExtractor, error) {
	switch kind {
	case KindFitz, "":
		return NewFitz(), nil
	case KindPDF:
		return NewPlainPDF(), nil
	default:
		return nil, fmt.Errorf("unknown extractor %q (valid: %s or %s)", kind, KindFitz, KindPDF)
	}
}
