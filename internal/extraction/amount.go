package extraction

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountNormalizer converts between the amount text printed on a receipt,
// the canonical form kept in RawFields and the form used in filenames
type AmountNormalizer interface {
	// Normalize turns raw receipt text into a canonical amount ("1234.56")
	Normalize(raw string) string
	// Display formats a canonical amount for a filename
	Display(canonical string) string
}

// BRLAmounts handles Brazilian real amounts: "." groups thousands and ","
// separates the cents.
type BRLAmounts struct{}

// Normalize drops thousands dots and turns the decimal comma into a dot.
// Text without a comma is already canonical and is returned unchanged.
func (BRLAmounts) Normalize(raw string) string {
	if !strings.Contains(raw, ",") {
		return raw
	}
	return strings.ReplaceAll(strings.ReplaceAll(raw, ".", ""), ",", ".")
}

// Display renders a canonical amount as "1.234,56". Input that is not a
// number is returned as-is.
func (BRLAmounts) Display(canonical string) string {
	d, err := decimal.NewFromString(canonical)
	if err != nil {
		return canonical
	}

	fixed := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	whole, cents, _ := strings.Cut(fixed, ".")
	return sign + groupThousands(whole, ".") + "," + cents
}

// ParseAmount returns the canonical amount as a decimal
func ParseAmount(canonical string) (decimal.Decimal, error) {
	return decimal.NewFromString(canonical)
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
