package receipt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/zombor/receipt-renamer/internal/extraction"
	"github.com/zombor/receipt-renamer/internal/scanning"
)

// ErrExtractionFailure wraps any failure of the text extractor
var ErrExtractionFailure = errors.New("text extraction failed")

// ErrNoJournal is returned by journal operations when no DB is configured
var ErrNoJournal = errors.New("no rename journal configured")

// IDGenerator generates unique IDs for runs and journal entries
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates random UUIDs
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service renames the receipts of one directory
type Service struct {
	db          DB
	extractor   scanning.TextExtractor
	storage     Storage
	engine      *extraction.Engine
	idGenerator IDGenerator
	timeSource  TimeSource
	dryRun      bool
}

// NewService creates a new Service with default ID generator and time source.
// db may be nil, in which case renames are not journaled.
func NewService(db DB, extractor scanning.TextExtractor, storage Storage, engine *extraction.Engine) *Service {
	return NewServiceWithDeps(db, extractor, storage, engine, &defaultIDGenerator{}, &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, extractor scanning.TextExtractor, storage Storage, engine *extraction.Engine, idGen IDGenerator, timeSrc TimeSource) *Service {
	if engine == nil {
		engine = extraction.NewEngine()
	}
	return &Service{
		db:          db,
		extractor:   extractor,
		storage:     storage,
		engine:      engine,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// SetDryRun makes ProcessDirectory compute names without renaming
func (s *Service) SetDryRun(dryRun bool) {
	s.dryRun = dryRun
}

// ProcessDirectory renames every receipt of the storage directory, one file
// at a time. A failing file is recorded and the run moves on; only a listing
// failure or a cancelled context stops it.
func (s *Service) ProcessDirectory(ctx context.Context) (*RunSummary, error) {
	names, err := s.storage.List()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}

	summary := &RunSummary{
		RunID:     s.idGenerator.Generate(),
		Directory: s.storage.Dir(),
		StartedAt: s.timeSource.Now(),
		Outcomes:  make([]*Outcome, 0, len(names)),
		Total:     len(names),
	}
	slog.Info("Processing directory", "dir", summary.Directory, "files", len(names), "run_id", summary.RunID, "dry_run", s.dryRun)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		outcome := s.processFile(summary.RunID, name)
		summary.add(outcome)
		logOutcome(outcome)
	}

	slog.Info("Run finished",
		"run_id", summary.RunID,
		"processed", summary.Processed,
		"failed", summary.Failed,
		"extraction_failed", summary.ExtractionFailed,
		"skipped", summary.Skipped,
		"total", summary.Total,
	)
	return summary, nil
}

func (s *Service) processFile(runID, name string) *Outcome {
	outcome := &Outcome{Source: name, Layout: extraction.LayoutUnknown.String()}

	if extraction.IsProcessedName(name) {
		outcome.Status = StatusSkipped
		outcome.Reason = "already renamed"
		return outcome
	}

	data, err := s.storage.Get(name)
	if err != nil {
		outcome.Status = StatusExtractionFailed
		outcome.Reason = fmt.Errorf("%w: %v", ErrExtractionFailure, err).Error()
		return outcome
	}

	result, err := s.analyze(data)
	if result != nil {
		outcome.Layout = result.Layout.String()
		outcome.Fields = result.Fields
	}
	if err != nil {
		outcome.Status = StatusFailed
		if errors.Is(err, ErrExtractionFailure) {
			outcome.Status = StatusExtractionFailed
		}
		outcome.Reason = err.Error()
		return outcome
	}

	// the file's own name is free for itself
	target := extraction.ResolveCollision(result.Filename, func(candidate string) bool {
		return candidate != name && s.storage.Exists(candidate)
	})
	outcome.Target = target
	if target == name {
		outcome.Status = StatusSkipped
		outcome.Reason = "already named"
		return outcome
	}

	if s.dryRun {
		outcome.Status = StatusProposed
		return outcome
	}

	if err := s.storage.Rename(name, target); err != nil {
		outcome.Status = StatusFailed
		outcome.Reason = err.Error()
		return outcome
	}
	outcome.Status = StatusRenamed
	s.journal(runID, name, target)
	return outcome
}

// analyze extracts the text of a PDF and runs the engine on it. The result
// is nil only when text extraction failed.
func (s *Service) analyze(data []byte) (*extraction.Result, error) {
	text, err := s.extractor.ExtractText(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailure, err)
	}
	return s.engine.Process(text)
}

func (s *Service) journal(runID, from, to string) {
	if s.db == nil {
		return
	}
	record := &RenameRecord{
		ID:        s.idGenerator.Generate(),
		RunID:     runID,
		Directory: s.storage.Dir(),
		From:      from,
		To:        to,
		RenamedAt: s.timeSource.Now(),
	}
	if err := s.db.SaveRename(record); err != nil {
		// the file is already renamed; losing the entry only affects undo
		slog.Warn("Failed to journal rename", "from", from, "to", to, "error", err)
	}
}

func logOutcome(o *Outcome) {
	switch o.Status {
	case StatusRenamed, StatusProposed:
		slog.Info("Receipt renamed", "status", o.Status, "from", o.Source, "to", o.Target, "layout", o.Layout)
	case StatusSkipped:
		slog.Info("Receipt skipped", "file", o.Source, "reason", o.Reason)
	default:
		slog.Warn("Receipt not renamed", "status", o.Status, "file", o.Source, "layout", o.Layout, "reason", o.Reason)
	}
}

// Preview runs extraction on an in-memory PDF without touching the
// directory. The outcome is always returned; err is set when no name could
// be produced.
func (s *Service) Preview(filename string, data []byte) (*Outcome, error) {
	outcome := &Outcome{Source: filename, Layout: extraction.LayoutUnknown.String()}

	result, err := s.analyze(data)
	if result != nil {
		outcome.Layout = result.Layout.String()
		outcome.Fields = result.Fields
		outcome.Target = result.Filename
	}
	switch {
	case errors.Is(err, ErrExtractionFailure):
		outcome.Status = StatusExtractionFailed
	case err != nil:
		outcome.Status = StatusFailed
	default:
		outcome.Status = StatusProposed
		return outcome, nil
	}
	outcome.Reason = err.Error()
	return outcome, err
}

// ListRenames returns the journal, oldest first
func (s *Service) ListRenames() ([]*RenameRecord, error) {
	if s.db == nil {
		return []*RenameRecord{}, nil
	}
	records, err := s.db.ListRenames()
	if err != nil {
		return nil, fmt.Errorf("listing renames: %w", err)
	}
	return records, nil
}

// UndoRun restores the original names of every file renamed by a run,
// newest rename first. Entries whose file is gone or whose original name is
// taken are left in the journal. It returns the number of files restored.
func (s *Service) UndoRun(runID string) (int, error) {
	if s.db == nil {
		return 0, ErrNoJournal
	}

	records, err := s.db.ListRun(runID)
	if err != nil {
		return 0, fmt.Errorf("listing run %s: %w", runID, err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("run not found: %s", runID)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RenamedAt.After(records[j].RenamedAt)
	})

	restored := 0
	for _, record := range records {
		if record.Directory != s.storage.Dir() {
			slog.Warn("Rename belongs to another directory", "id", record.ID, "dir", record.Directory)
			continue
		}
		if !s.storage.Exists(record.To) {
			slog.Warn("Renamed file is gone", "file", record.To)
			continue
		}
		if s.storage.Exists(record.From) {
			slog.Warn("Original name is taken", "file", record.From)
			continue
		}

		if err := s.storage.Rename(record.To, record.From); err != nil {
			return restored, fmt.Errorf("restoring %s: %w", record.From, err)
		}
		if err := s.db.DeleteRename(record.ID); err != nil {
			return restored, fmt.Errorf("deleting rename %s: %w", record.ID, err)
		}
		slog.Info("Receipt restored", "from", record.To, "to", record.From)
		restored++
	}
	return restored, nil
}
