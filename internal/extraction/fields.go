package extraction

const (
	// DescriptionNotFound is the description sentinel
	DescriptionNotFound = "sem_descricao"
	// AmountNotFound is the canonical amount sentinel
	AmountNotFound = "0.00"
)

// RawFields is the triple an extractor fills in. Amount holds a canonical
// amount and Date a "DD_mon" date once found; sentinels otherwise.
type RawFields struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
}

// NewRawFields returns a triple with every field at its sentinel
func NewRawFields() RawFields {
	return RawFields{
		Description: DescriptionNotFound,
		Amount:      AmountNotFound,
	}
}
