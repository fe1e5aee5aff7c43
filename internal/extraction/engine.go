package extraction

import (
	"regexp"
	"strings"
)

// Engine classifies receipt text and extracts the fields used to name it
type Engine struct {
	amounts AmountNormalizer
	tracer  Tracer
}

// Option configures an Engine
type Option func(*Engine)

// WithTracer routes trace events to t
func WithTracer(t Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithAmountNormalizer replaces the default Brazilian amount handling
func WithAmountNormalizer(a AmountNormalizer) Option {
	return func(e *Engine) {
		if a != nil {
			e.amounts = a
		}
	}
}

// NewEngine creates an Engine with BRL amounts and no tracing
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		amounts: BRLAmounts{},
		tracer:  NopTracer{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Amounts returns the amount normalizer in use
func (e *Engine) Amounts() AmountNormalizer {
	return e.amounts
}

// Result is the outcome of Process for one receipt
type Result struct {
	Layout   Layout    `json:"-"`
	Fields   RawFields `json:"fields"`
	Filename string    `json:"filename,omitempty"`
}

// Process runs the full pipeline on extracted text. The returned Result is
// never nil so callers can report the layout and fields of a failure.
func (e *Engine) Process(text string) (*Result, error) {
	doc := NewDocument(text)
	layout := Classify(text)
	e.trace(Event{Layout: layout, Stage: StageClassify, Value: layout.String()})

	result := &Result{Layout: layout, Fields: NewRawFields()}
	if layout == LayoutUnknown {
		return result, ErrUnknownLayout
	}

	fields := e.Extract(layout, doc)
	fields.Description = SanitizeDescription(fields.Description)
	result.Fields = fields

	name, err := Synthesize(fields, e.amounts)
	if err != nil {
		return result, err
	}
	result.Filename = name
	return result, nil
}

// Extract runs the extractor bound to layout. LayoutUnknown yields the
// sentinel triple.
func (e *Engine) Extract(layout Layout, doc Document) RawFields {
	for i, line := range doc {
		e.trace(Event{Layout: layout, Stage: StageLine, Line: i + 1, Text: line})
	}

	var fields RawFields
	switch layout {
	case LayoutDARF:
		fields = e.extractDARF(doc)
	case LayoutBradesco:
		fields = e.extractBradesco(doc)
	case LayoutPix:
		fields = e.extractPix(doc)
	case LayoutBoleto:
		fields = e.extractBoleto(doc)
	case LayoutConsumption:
		fields = e.extractConsumption(doc)
	default:
		fields = NewRawFields()
	}

	e.trace(Event{
		Layout: layout,
		Stage:  StageResult,
		Text:   fields.Description,
		Value:  fields.Amount + " " + fields.Date,
	})
	return fields
}

func (e *Engine) trace(ev Event) {
	e.tracer.Trace(ev)
}

func (e *Engine) traceLabel(layout Layout, i int, line string) {
	e.trace(Event{Layout: layout, Stage: StageLabel, Line: i + 1, Text: line})
}

func (e *Engine) traceField(layout Layout, i int, field, value string) {
	e.trace(Event{Layout: layout, Stage: StageField, Line: i + 1, Field: field, Value: value})
}

// numericRun is a run of digits, dots and commas that starts and ends with
// a digit
const numericRun = `\d(?:[\d.,]*\d)?`

var (
	numericRunPattern = regexp.MustCompile(numericRun)
	datePattern       = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})`)
)

// lineFilter decides whether a line is a candidate for a field. It gets the
// lower-cased line.
type lineFilter func(lower string) bool

func anyLine(string) bool { return true }

// firstAmount returns the canonical amount from the first candidate line on
// which one of patterns matches. Patterns are tried in order; the first
// capture group (or the whole match) is the raw amount.
func (e *Engine) firstAmount(layout Layout, doc Document, keep lineFilter, patterns ...*regexp.Regexp) (string, bool) {
	for i, line := range doc {
		if !keep(strings.ToLower(line)) {
			continue
		}
		for _, re := range patterns {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			raw := m[len(m)-1]
			amount := e.amounts.Normalize(raw)
			e.traceField(layout, i, "amount", raw+" -> "+amount)
			return amount, true
		}
	}
	return "", false
}

// firstDate returns the normalized date from the first candidate line that
// carries a valid one. A match with an invalid month does not stop the scan.
func (e *Engine) firstDate(layout Layout, doc Document, keep lineFilter, patterns ...*regexp.Regexp) (string, bool) {
	for i, line := range doc {
		if !keep(strings.ToLower(line)) {
			continue
		}
		for _, re := range patterns {
			if date, ok := matchDate(re, line); ok {
				e.traceField(layout, i, "date", date)
				return date, true
			}
		}
	}
	return "", false
}

// matchDate reads day, month and year from the last three groups of re
func matchDate(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if len(m) < 4 {
		return "", false
	}
	n := len(m)
	return NormalizeDate(m[n-3], m[n-2], m[n-1])
}
