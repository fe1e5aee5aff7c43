package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/receipt-renamer/internal/extraction"
	"github.com/zombor/receipt-renamer/internal/receipt"
	"github.com/zombor/receipt-renamer/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	os.Exit(run())
}

// run returns the process exit code so deferred cleanup happens before exit
func run() int {
	fs := ff.NewFlagSet("renomeador")
	var (
		dir         = fs.StringLong("dir", ".", "Directory holding the receipt PDFs")
		extractor   = fs.StringLong("extractor", scanning.KindFitz, "PDF text extractor: 'fitz' or 'pdf'")
		dryRun      = fs.BoolLong("dry-run", "Print the proposed names without renaming")
		debug       = fs.BoolLong("debug", "Log extraction traces")
		journalPath = fs.StringLong("journal", "", "Rename journal file path (default: "+receipt.JournalFileName+" inside --dir)")
		noJournal   = fs.BoolLong("no-journal", "Do not record renames")
		reportPath  = fs.StringLong("report", "", "Write an XLSX report of the run to this path")
		undoRun     = fs.StringLong("undo", "", "Restore the original names of a run ID")
		history     = fs.BoolLong("history", "Print the rename journal and exit")
		serve       = fs.BoolLong("serve", "Start the HTTP preview server")
		port        = fs.IntLong("port", 8080, "HTTP server port")
		authUser    = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		_           = fs.StringLong("config", "", "Config file (one 'flag value' per line)")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RENOMEADOR"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		return 0
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	textExtractor, err := scanning.NewExtractor(*extractor)
	if err != nil {
		slog.Error("Failed to initialize extractor", "error", err)
		return 1
	}
	defer textExtractor.Close()

	store, err := receipt.NewLocalStorage(*dir)
	if err != nil {
		slog.Error("Failed to open directory", "dir", *dir, "error", err)
		return 1
	}

	// Only a renaming run creates the journal; the other modes read it if present
	var db receipt.DB
	if !*noJournal {
		path := receipt.JournalPath(store.Dir(), *journalPath)
		writes := !*dryRun && !*history && !*serve && *undoRun == ""
		boltDB, err := receipt.OpenJournal(path, writes)
		if err != nil {
			slog.Error("Failed to open rename journal", "path", path, "error", err)
			return 1
		}
		if boltDB != nil {
			defer boltDB.Close()
			db = boltDB
		}
	}

	var opts []extraction.Option
	if *debug {
		opts = append(opts, extraction.WithTracer(extraction.SlogTracer{}))
	}
	service := receipt.NewService(db, textExtractor, store, extraction.NewEngine(opts...))
	service.SetDryRun(*dryRun)

	switch {
	case *history:
		return printHistory(service)
	case *undoRun != "":
		restored, err := service.UndoRun(*undoRun)
		if err != nil {
			slog.Error("Failed to undo run", "run_id", *undoRun, "error", err)
			return 1
		}
		fmt.Printf("Restored %d file(s)\n", restored)
		return 0
	case *serve:
		return runServer(service, *port, receipt.BasicAuth{Username: *authUser, Password: *authPass})
	default:
		return runDirectory(service, *reportPath, *dryRun)
	}
}

func runDirectory(service *receipt.Service, reportPath string, dryRun bool) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := service.ProcessDirectory(ctx)
	if errors.Is(err, context.Canceled) {
		slog.Warn("Run interrupted", "processed", summary.Processed, "failed", summary.Failed)
	} else if err != nil {
		slog.Error("Failed to process directory", "error", err)
		return 1
	}

	for _, o := range summary.Outcomes {
		switch o.Status {
		case receipt.StatusRenamed, receipt.StatusProposed:
			fmt.Printf("%-9s %s -> %s\n", o.Status, o.Source, o.Target)
		default:
			fmt.Printf("%-9s %s (%s)\n", o.Status, o.Source, o.Reason)
		}
	}
	fmt.Printf("\nprocessed: %d  failed: %d  extraction failed: %d  skipped: %d  total: %d\n",
		summary.Processed, summary.Failed, summary.ExtractionFailed, summary.Skipped, summary.Total)
	if summary.Processed > 0 && !dryRun {
		fmt.Printf("run: %s (undo with --undo %s)\n", summary.RunID, summary.RunID)
	}

	if reportPath != "" {
		if err := receipt.WriteReport(summary, reportPath); err != nil {
			slog.Error("Failed to write report", "error", err)
			return 1
		}
	}
	return 0
}

func printHistory(service *receipt.Service) int {
	records, err := service.ListRenames()
	if err != nil {
		slog.Error("Failed to read rename journal", "error", err)
		return 1
	}
	if len(records) == 0 {
		fmt.Println("No renames recorded")
		return 0
	}

	runID := ""
	for _, r := range records {
		if r.RunID != runID {
			runID = r.RunID
			fmt.Printf("\nrun %s  %s  %s\n", runID, r.RenamedAt.Format("2006-01-02 15:04"), r.Directory)
		}
		fmt.Printf("  %s -> %s\n", r.From, r.To)
	}
	return 0
}

func runServer(service *receipt.Service, port int, basicAuth receipt.BasicAuth) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := receipt.NewServer(service, basicAuth)
	addr := fmt.Sprintf(":%d", port)
	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if basicAuth.Enabled() {
		slog.Info("Basic auth enabled", "user", basicAuth.Username)
	}

	if err := server.Start(ctx, addr); err != nil {
		slog.Error("Server error", "error", err)
		return 1
	}
	slog.Info("Shutting down...")
	return 0
}
