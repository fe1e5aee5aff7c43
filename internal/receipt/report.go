package receipt

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/zombor/receipt-renamer/internal/extraction"
)

const (
	reportSheet  = "Receipts"
	summarySheet = "Summary"
)

var reportHeaders = []string{
	"Source",
	"Layout",
	"Description",
	"Amount",
	"Date",
	"Target",
	"Status",
	"Reason",
}

// WriteReport saves the outcomes of a run as an XLSX workbook at path
func WriteReport(summary *RunSummary, path string) error {
	f, err := buildReport(summary)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	slog.Info("Report written", "path", path, "rows", len(summary.Outcomes))
	return nil
}

// columnWidths is applied to the outcome sheet, then to the summary sheet
var columnWidths = []struct {
	sheet      string
	start, end string
	width      float64
}{
	{reportSheet, "A", "A", 40},
	{reportSheet, "B", "B", 14},
	{reportSheet, "C", "C", 36},
	{reportSheet, "D", "E", 12},
	{reportSheet, "F", "F", 48},
	{reportSheet, "G", "G", 18},
	{reportSheet, "H", "H", 40},
	{summarySheet, "A", "A", 20},
	{summarySheet, "B", "B", 48},
}

func buildReport(summary *RunSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fillReport(f, summary); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fillReport(f *excelize.File, summary *RunSummary) error {
	// the default sheet becomes the outcome sheet
	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	header := make([]any, len(reportHeaders))
	for i, h := range reportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for n, o := range summary.Outcomes {
		var amount any = o.Fields.Amount
		if value, err := extraction.ParseAmount(o.Fields.Amount); err == nil {
			amount = value.InexactFloat64()
		}
		row := []any{
			o.Source,
			o.Layout,
			o.Fields.Description,
			amount,
			o.Fields.Date,
			o.Target,
			string(o.Status),
			o.Reason,
		}

		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return fmt.Errorf("locating row for %s: %w", o.Source, err)
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row for %s: %w", o.Source, err)
		}
	}

	rows := [][]any{
		{"Run", summary.RunID},
		{"Directory", summary.Directory},
		{"Started", summary.StartedAt.Format("2006-01-02 15:04:05")},
		{"Processed", summary.Processed},
		{"Failed", summary.Failed},
		{"Extraction failed", summary.ExtractionFailed},
		{"Skipped", summary.Skipped},
		{"Total", summary.Total},
	}
	for i, r := range rows {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &r); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	for _, c := range columnWidths {
		if err := f.SetColWidth(c.sheet, c.start, c.end, c.width); err != nil {
			return fmt.Errorf("sizing columns of %s: %w", c.sheet, err)
		}
	}
	return nil
}
