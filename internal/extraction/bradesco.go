package extraction

import "regexp"

var (
	bradescoDescription = regexp.MustCompile(`(?i)^descri[cç][aã]o\s*:?\s*(.*)$`)
	bradescoOtherLabel  = regexp.MustCompile(`(?i)^(?:valor|data|r\$)`)
	bradescoTotal       = regexp.MustCompile(`(?i)valor\s+total\s*:?\s*r?\$?\s*(` + numericRun + `)`)
	bradescoDate        = regexp.MustCompile(`(?i)data\s+de\s+(?:d[ée]bito|cr[ée]dito)\s*:?\s*(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})`)
)

// extractBradesco reads a Bradesco receipt, where values sit after their
// label on the same line or, for the description, on the next line.
func (e *Engine) extractBradesco(doc Document) RawFields {
	fields := NewRawFields()

	if i := doc.index(bradescoDescription.MatchString); i >= 0 {
		e.traceLabel(LayoutBradesco, i, doc[i])
		rest := bradescoDescription.FindStringSubmatch(doc[i])[1]
		switch {
		case rest != "":
			fields.Description = rest
			e.traceField(LayoutBradesco, i, "description", rest)
		default:
			// the next line may itself be a label when the description is blank
			if next, ok := doc.next(i); ok && next != "" && !bradescoOtherLabel.MatchString(next) {
				fields.Description = next
				e.traceField(LayoutBradesco, i+1, "description", next)
			}
		}
	}

	if amount, ok := e.firstAmount(LayoutBradesco, doc, anyLine, bradescoTotal); ok {
		fields.Amount = amount
	}
	if date, ok := e.firstDate(LayoutBradesco, doc, anyLine, bradescoDate); ok {
		fields.Date = date
	}
	return fields
}
