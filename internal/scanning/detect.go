package scanning

import (
	"bytes"
	"errors"
	"strings"
)

// ErrNotPDF is returned for payloads without a PDF header
var ErrNotPDF = errors.New("not a PDF document")

// pdfMagic opens every PDF file. Some producers put a few junk bytes
// before it, which readers tolerate within the first kilobyte.
var pdfMagic = []byte("%PDF-")

// IsPDF checks if the data looks like a PDF document
func IsPDF(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(head, pdfMagic)
}

// joinPages concatenates page texts, each followed by a newline
func joinPages(pages []string) string {
	var b strings.Builder
	for _, page := range pages {
		b.WriteString(page)
		b.WriteString("\n")
	}
	return b.String()
}
