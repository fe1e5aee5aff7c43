package extraction

import (
	"regexp"
	"strings"
)

const pixMarker = "comprovante de pagamento pix"

var (
	pixAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)valor[:\s]*r\$\s*(` + numericRun + `)`),
		regexp.MustCompile(`(?i)r\$\s*(` + numericRun + `)`),
		numericRunPattern,
	}
	pixDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)realizado em[:\s]*(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})`),
		datePattern,
	}
)

// extractPix reads a Pix payment receipt. The payee is the first meaningful
// line after the receipt title; nothing is extracted without the title.
func (e *Engine) extractPix(doc Document) RawFields {
	fields := NewRawFields()

	marker := doc.index(func(line string) bool {
		return strings.Contains(strings.ToLower(line), pixMarker)
	})
	if marker < 0 {
		return fields
	}
	e.traceLabel(LayoutPix, marker, doc[marker])

	for i := marker + 1; i < len(doc); i++ {
		lower := strings.ToLower(doc[i])
		if doc[i] == "" || strings.HasPrefix(lower, "valor") || strings.HasPrefix(lower, "realizado em") {
			continue
		}
		fields.Description = doc[i]
		e.traceField(LayoutPix, i, "description", doc[i])
		break
	}

	amountLine := func(lower string) bool {
		return strings.Contains(lower, "valor") && strings.Contains(lower, "r$")
	}
	if amount, ok := e.firstAmount(LayoutPix, doc, amountLine, pixAmountPatterns...); ok {
		fields.Amount = amount
	}

	dateLine := func(lower string) bool {
		return strings.Contains(lower, "realizado em")
	}
	if date, ok := e.firstDate(LayoutPix, doc, dateLine, pixDatePatterns...); ok {
		fields.Date = date
	}

	return fields
}
