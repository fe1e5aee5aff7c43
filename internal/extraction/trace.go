package extraction

import "log/slog"

// Stage names the step of the engine an Event was emitted from
type Stage string

const (
	StageLine     Stage = "line"
	StageClassify Stage = "classify"
	StageLabel    Stage = "label"
	StageField    Stage = "field"
	StageResult   Stage = "result"
)

// Event is a structured trace record. Line is 1-based; zero when the event
// is not tied to a line.
type Event struct {
	Layout Layout
	Stage  Stage
	Line   int
	Text   string
	Field  string
	Value  string
}

// Tracer receives trace events from the engine. Hosts decide whether and
// how to show them.
type Tracer interface {
	Trace(Event)
}

// NopTracer discards every event
type NopTracer struct{}

func (NopTracer) Trace(Event) {}

// SlogTracer writes events to a slog.Logger at debug level
type SlogTracer struct {
	Logger *slog.Logger
}

func (t SlogTracer) Trace(ev Event) {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("extraction trace",
		"layout", ev.Layout.String(),
		"stage", string(ev.Stage),
		"line", ev.Line,
		"text", ev.Text,
		"field", ev.Field,
		"value", ev.Value,
	)
}
