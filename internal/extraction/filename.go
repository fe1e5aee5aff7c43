package extraction

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// processedName matches "<description>_<amount>_<DD>_<mon>.pdf", optionally
// followed by a collision suffix such as "_2"
var processedName = regexp.MustCompile(`(?i)^.+_[\d.,]+_\d{2}_[a-z]{3}(?:_\d+)?\.pdf$`)

// IsProcessedName reports whether a filename already follows the naming
// convention and must not be processed again
func IsProcessedName(name string) bool {
	return processedName.MatchString(name)
}

// Synthesize validates fields and builds the canonical filename. A zero
// amount is accepted.
func Synthesize(fields RawFields, amounts AmountNormalizer) (string, error) {
	if fields.Description == "" || fields.Description == DescriptionNotFound {
		return "", ErrMissingDescription
	}
	if fields.Date == "" {
		return "", ErrMissingDate
	}
	if amounts == nil {
		amounts = BRLAmounts{}
	}
	return fmt.Sprintf("%s_%s_%s.pdf", fields.Description, amounts.Display(fields.Amount), fields.Date), nil
}

// CollisionName returns the n-th candidate for name: name itself for n == 0,
// then "<base>_<n><ext>"
func CollisionName(name string, n int) string {
	if n <= 0 {
		return name
	}
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n, ext)
}

// ResolveCollision walks the candidate sequence of name until exists
// reports a free one
func ResolveCollision(name string, exists func(string) bool) string {
	for n := 0; ; n++ {
		candidate := CollisionName(name, n)
		if !exists(candidate) {
			return candidate
		}
	}
}
