package extraction

import "strings"

// extractBoleto reads a boleto payment receipt: the beneficiary name is on
// the line after its label.
func (e *Engine) extractBoleto(doc Document) RawFields {
	fields := NewRawFields()

	if i := doc.index(func(line string) bool {
		return strings.Contains(fold(line), "razao social do beneficiario")
	}); i >= 0 {
		e.traceLabel(LayoutBoleto, i, doc[i])
		if next, ok := doc.next(i); ok {
			fields.Description = next
			e.traceField(LayoutBoleto, i+1, "description", next)
		}
	}

	amountLine := func(lower string) bool {
		return strings.Contains(lower, "valor") && strings.Contains(lower, "r$")
	}
	if amount, ok := e.firstAmount(LayoutBoleto, doc, amountLine, numericRunPattern); ok {
		fields.Amount = amount
	}

	dateLine := func(lower string) bool {
		return strings.Contains(lower, "vencimento") || strings.Contains(lower, "pagamento")
	}
	if date, ok := e.firstDate(LayoutBoleto, doc, dateLine, datePattern); ok {
		fields.Date = date
	}

	return fields
}
