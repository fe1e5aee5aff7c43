package extraction

import "regexp"

var (
	darfDocumentLabel = regexp.MustCompile(`(?i)n[uú]mero\s+do\s+documento\s*:?`)
	darfTotalLabel    = regexp.MustCompile(`(?i)valor\s+total\s*\(\s*r\$\s*\)\s*:?`)
	darfPaymentLabel  = regexp.MustCompile(`(?i)data\s+do\s+pagamento\s*:?`)
	darfDate          = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})`)
	nonDigits         = regexp.MustCompile(`\D`)
)

// extractDARF reads a DARF payment receipt. DARF prints every value on the
// line above its label, so each field is read from the predecessor of the
// first matching label line. Only the first label occurrence is considered.
func (e *Engine) extractDARF(doc Document) RawFields {
	fields := RawFields{Description: "DARF", Amount: AmountNotFound}

	if value, i, ok := e.darfValue(doc, darfDocumentLabel); ok {
		if digits := nonDigits.ReplaceAllString(value, ""); digits != "" {
			fields.Description = "DARF_" + digits
			e.traceField(LayoutDARF, i, "description", fields.Description)
		}
	}

	if value, i, ok := e.darfValue(doc, darfTotalLabel); ok {
		if raw := numericRunPattern.FindString(value); raw != "" {
			fields.Amount = e.amounts.Normalize(raw)
			e.traceField(LayoutDARF, i, "amount", raw+" -> "+fields.Amount)
		}
	}

	if value, i, ok := e.darfValue(doc, darfPaymentLabel); ok {
		if date, found := matchDate(darfDate, value); found {
			fields.Date = date
			e.traceField(LayoutDARF, i, "date", date)
		}
	}

	return fields
}

// darfValue finds the first line matching label and returns the line above
// it with its index. A label on the first line has no value.
func (e *Engine) darfValue(doc Document, label *regexp.Regexp) (string, int, bool) {
	i := doc.index(label.MatchString)
	if i < 0 {
		return "", 0, false
	}
	e.traceLabel(LayoutDARF, i, doc[i])

	value, ok := doc.previous(i)
	if !ok {
		return "", 0, false
	}
	return value, i - 1, true
}
