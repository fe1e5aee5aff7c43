package extraction

import "strings"

// extractConsumption reads a utility bill payment (power, water, gas).
func (e *Engine) extractConsumption(doc Document) RawFields {
	fields := NewRawFields()

	if i := doc.index(func(line string) bool {
		return strings.Contains(strings.ToLower(line), "nome da empresa")
	}); i >= 0 {
		e.traceLabel(LayoutConsumption, i, doc[i])
		if next, ok := doc.next(i); ok {
			fields.Description = next
			e.traceField(LayoutConsumption, i+1, "description", next)
		}
	}

	amountLine := func(lower string) bool {
		return strings.Contains(lower, "total") &&
			(strings.Contains(lower, "r$") || strings.Contains(lower, "valor"))
	}
	if amount, ok := e.firstAmount(LayoutConsumption, doc, amountLine, numericRunPattern); ok {
		fields.Amount = amount
	}

	dateLine := func(lower string) bool {
		return strings.Contains(lower, "vencimento") || strings.Contains(lower, "data")
	}
	if date, ok := e.firstDate(LayoutConsumption, doc, dateLine, datePattern); ok {
		fields.Date = date
	}

	return fields
}
