package extraction

import "strings"

// Document is the ordered sequence of trimmed lines of one receipt
type Document []string

// lineBreaks maps every line boundary the extractors may emit to "\n",
// including the file/group/record separators and U+0085, U+2028, U+2029
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\f", "\n",
	"\v", "\n",
	"\x1c", "\n",
	"\x1d", "\n",
	"\x1e", "\n",
	"\u0085", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

// NewDocument splits extracted text into trimmed lines. Empty lines are kept
// so positional rules ("the next line") see the same layout the PDF had.
func NewDocument(text string) Document {
	text = lineBreaks.Replace(text)
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return Document{}
	}

	raw := strings.Split(text, "\n")
	doc := make(Document, len(raw))
	for i, line := range raw {
		doc[i] = strings.TrimSpace(line)
	}
	return doc
}

// index returns the position of the first line accepted by match, or -1
func (d Document) index(match func(line string) bool) int {
	for i, line := range d {
		if match(line) {
			return i
		}
	}
	return -1
}

// next returns the line following i, if there is one
func (d Document) next(i int) (string, bool) {
	if i < 0 || i+1 >= len(d) {
		return "", false
	}
	return d[i+1], true
}

// previous returns the line preceding i, if there is one
func (d Document) previous(i int) (string, bool) {
	if i <= 0 || i > len(d) {
		return "", false
	}
	return d[i-1], true
}
