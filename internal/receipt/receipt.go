package receipt

import (
	"time"

	"github.com/zombor/receipt-renamer/internal/extraction"
)

// Status is the per-file result of a run
type Status string

const (
	StatusRenamed          Status = "renamed"
	StatusProposed         Status = "proposed" // dry run: the name was computed but not applied
	StatusSkipped          Status = "skipped"
	StatusFailed           Status = "failed"
	StatusExtractionFailed Status = "extraction_failed"
)

// Outcome describes what happened to one input file
type Outcome struct {
	Source string               `json:"source"`
	Target string               `json:"target,omitempty"`
	Layout string               `json:"layout"`
	Fields extraction.RawFields `json:"fields"`
	Status Status               `json:"status"`
	Reason string               `json:"reason,omitempty"`
}

// RunSummary aggregates the outcomes of one directory run
type RunSummary struct {
	RunID            string     `json:"run_id"`
	Directory        string     `json:"directory"`
	StartedAt        time.Time  `json:"started_at"`
	Outcomes         []*Outcome `json:"outcomes"`
	Processed        int        `json:"processed"`
	Failed           int        `json:"failed"`
	ExtractionFailed int        `json:"extraction_failed"`
	Skipped          int        `json:"skipped"`
	Total            int        `json:"total"`
}

func (s *RunSummary) add(o *Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch o.Status {
	case StatusRenamed, StatusProposed:
		s.Processed++
	case StatusSkipped:
		s.Skipped++
	case StatusExtractionFailed:
		s.ExtractionFailed++
	default:
		s.Failed++
	}
}

// RenameRecord is a journal entry for one applied rename
type RenameRecord struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	Directory string    `json:"directory"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	RenamedAt time.Time `json:"renamed_at"`
}
