package extraction

import "strings"

// Layout identifies one of the known receipt structures
type Layout int

const (
	LayoutUnknown Layout = iota
	LayoutDARF
	LayoutBradesco
	LayoutPix
	LayoutBoleto
	LayoutConsumption
)

func (l Layout) String() string {
	switch l {
	case LayoutDARF:
		return "DARF"
	case LayoutBradesco:
		return "BRADESCO"
	case LayoutPix:
		return "PIX"
	case LayoutBoleto:
		return "BOLETO"
	case LayoutConsumption:
		return "CONSUMPTION"
	default:
		return "UNKNOWN"
	}
}

// layoutRules is evaluated top to bottom. The order is part of the contract:
// several keyword sets can appear in the same receipt (a DARF paid through
// Bradesco mentions both) and the first rule that matches wins.
var layoutRules = []struct {
	layout  Layout
	phrases []string
}{
	{LayoutDARF, []string{"comprovante da pagamento de darf", "comprovante de pagamento de darf"}},
	{LayoutBradesco, []string{"bradesco", "data de débito", "data de crédito"}},
	{LayoutPix, []string{"comprovante de pagamento pix"}},
	{LayoutBoleto, []string{"razão social do beneficiário"}},
	{LayoutConsumption, []string{"nome da empresa"}},
}

// Classify returns the layout of a receipt from its full text.
// It never fails: text matching no rule is LayoutUnknown.
func Classify(text string) Layout {
	lower := strings.ToLower(text)
	for _, rule := range layoutRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(lower, phrase) {
				return rule.layout
			}
		}
	}
	return LayoutUnknown
}
