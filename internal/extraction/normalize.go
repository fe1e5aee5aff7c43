package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// monthAbbrev is indexed by month number minus one
var monthAbbrev = [12]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// NormalizeDate turns day/month/year text into "DD_mon". The year is
// accepted but dropped. An out-of-range or non-numeric month yields false.
func NormalizeDate(day, month, year string) (string, bool) {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%02d_%s", d, monthAbbrev[m-1]), true
}

var unsafeDescriptionChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// SanitizeDescription reduces a description to ASCII letters, digits and
// underscores, one underscore between words. Accents are stripped first ("Pensão" -> "Pensao"), so
// precomposed and decomposed text give the same name.
func SanitizeDescription(description string) string {
	words := make([]string, 0, 4)
	for _, word := range strings.Fields(stripAccents(description)) {
		if word = unsafeDescriptionChars.ReplaceAllString(word, ""); word != "" {
			words = append(words, word)
		}
	}
	return strings.Join(words, "_")
}

// stripAccents removes combining marks after canonical decomposition
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return stripped
}

// fold lower-cases s and strips combining accents ("Razão" -> "razao")
func fold(s string) string {
	return strings.ToLower(stripAccents(s))
}
