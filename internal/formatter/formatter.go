// package formatter renders transfer run reports to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/trackferry/trackferry/internal/shared"
	"github.com/trackferry/trackferry/internal/tasks"
)

// ReportToCSV converts a run ledger to CSV format with columns: Song, Status, TrackID, MatchedTitle, Attempts, Error
func ReportToCSV(ledger *tasks.Ledger) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Song", "Status", "TrackID", "MatchedTitle", "Attempts", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, outcome := range ledger.Outcomes {
		record := []string{
			outcome.Song,
			string(outcome.Status),
			outcome.TrackID,
			outcome.MatchedTitle,
			strconv.Itoa(outcome.Attempts),
			outcome.Err,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportToMarkdown converts a run ledger to Markdown format
func ReportToMarkdown(ledger *tasks.Ledger) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", ledger.PlaylistName))

	buf.WriteString(fmt.Sprintf("**Playlist ID**: %s\n", ledger.PlaylistID))
	buf.WriteString(fmt.Sprintf("**Requested**: %d\n", ledger.TotalRequested))
	buf.WriteString(fmt.Sprintf("**Added**: %d\n", ledger.Added))
	buf.WriteString(fmt.Sprintf("**Skipped duplicates**: %d\n", ledger.SkippedDuplicates))
	buf.WriteString(fmt.Sprintf("**Not found**: %d\n", ledger.NotFound))
	buf.WriteString(fmt.Sprintf("**Failed**: %d\n", ledger.Failed))
	buf.WriteString(fmt.Sprintf("**Quota spent**: %d\n", ledger.QuotaSpent))
	if !ledger.FinishedAt.IsZero() && !ledger.StartedAt.IsZero() {
		buf.WriteString(fmt.Sprintf("**Duration**: %s\n", shared.FormatDuration(ledger.FinishedAt.Sub(ledger.StartedAt))))
	}
	buf.WriteString("\n")

	buf.WriteString("## Results\n\n")
	for i, outcome := range ledger.Outcomes {
		detail := ""
		switch {
		case outcome.MatchedTitle != "":
			detail = fmt.Sprintf(" (matched %q)", outcome.MatchedTitle)
		case outcome.Err != "":
			detail = fmt.Sprintf(" (%s)", outcome.Err)
		}
		buf.WriteString(fmt.Sprintf("%d. %s [%s]%s\n", i+1, outcome.Song, outcome.Status, detail))
	}

	if ledger.HaltedEarly {
		buf.WriteString("\n## Unprocessed\n\n")
		buf.WriteString("The run stopped before these entries to stay within the daily quota:\n\n")
		for _, song := range ledger.Unprocessed {
			buf.WriteString(fmt.Sprintf("- %s\n", song))
		}
	}

	return buf.Bytes(), nil
}

// ReportToText converts a run ledger to plain text format
func ReportToText(ledger *tasks.Ledger) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s (%s)\n", ledger.PlaylistName, ledger.PlaylistID))
	buf.WriteString(fmt.Sprintf("Requested: %d  Added: %d  Skipped: %d  Not found: %d  Failed: %d\n\n",
		ledger.TotalRequested, ledger.Added, ledger.SkippedDuplicates, ledger.NotFound, ledger.Failed))

	for i, outcome := range ledger.Outcomes {
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, outcome.Song, outcome.Status))
	}

	if ledger.HaltedEarly {
		buf.WriteString(fmt.Sprintf("\nHalted early, %d entries unprocessed\n", len(ledger.Unprocessed)))
	}

	return buf.Bytes(), nil
}

// runSummary is the JSON shape written alongside CSV reports.
type runSummary struct {
	PlaylistID        string   `json:"playlist_id"`
	PlaylistName      string   `json:"playlist_name"`
	TotalRequested    int      `json:"total_requested"`
	Added             int      `json:"added"`
	SkippedDuplicates int      `json:"skipped_duplicates"`
	NotFound          int      `json:"not_found"`
	Failed            int      `json:"failed"`
	QuotaSpent        int      `json:"quota_spent"`
	HaltedEarly       bool     `json:"halted_early"`
	Unprocessed       []string `json:"unprocessed,omitempty"`
	StartedAt         string   `json:"started_at,omitempty"`
	FinishedAt        string   `json:"finished_at,omitempty"`
}

// ToSummaryJSON generates a JSON representation of the run totals (without per-song outcomes)
func ToSummaryJSON(ledger *tasks.Ledger) ([]byte, error) {
	summary := runSummary{
		PlaylistID:        ledger.PlaylistID,
		PlaylistName:      ledger.PlaylistName,
		TotalRequested:    ledger.TotalRequested,
		Added:             ledger.Added,
		SkippedDuplicates: ledger.SkippedDuplicates,
		NotFound:          ledger.NotFound,
		Failed:            ledger.Failed,
		QuotaSpent:        ledger.QuotaSpent,
		HaltedEarly:       ledger.HaltedEarly,
		Unprocessed:       ledger.Unprocessed,
	}
	if !ledger.StartedAt.IsZero() {
		summary.StartedAt = ledger.StartedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	if !ledger.FinishedAt.IsZero() {
		summary.FinishedAt = ledger.FinishedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	return shared.MarshalJSON(summary, true)
}

// CSVReportResult contains the paths of files created by WriteCSVReport
type CSVReportResult struct {
	ResultsFile string
	SummaryFile string
}

// WriteCSVReport exports a run ledger to CSV format with an accompanying summary JSON file.
//
// Defaults to the playlist ID as the base filename & creates {base}_results.csv and {base}_summary.json
func WriteCSVReport(ledger *tasks.Ledger, baseFilepath string) (*CSVReportResult, error) {
	if baseFilepath == "" {
		baseFilepath = ledger.PlaylistID
	}

	csvData, err := ReportToCSV(ledger)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	resultsFile := baseFilepath + "_results.csv"
	if err := os.WriteFile(resultsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	summaryJSON, err := ToSummaryJSON(ledger)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary JSON: %w", err)
	}

	summaryFile := baseFilepath + "_summary.json"
	if err := os.WriteFile(summaryFile, summaryJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write summary file: %w", err)
	}

	return &CSVReportResult{
		ResultsFile: resultsFile,
		SummaryFile: summaryFile,
	}, nil
}

// WriteMarkdownReport exports a run ledger to Markdown format.
//
// Defaults to {playlist ID}_report.md as the filename.
func WriteMarkdownReport(ledger *tasks.Ledger, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_report.md", ledger.PlaylistID)
	}

	mdData, err := ReportToMarkdown(ledger)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextReport exports a run ledger to plain text format.
//
// Defaults to {playlist ID}_report.txt as the filename.
func WriteTextReport(ledger *tasks.Ledger, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_report.txt", ledger.PlaylistID)
	}

	textData, err := ReportToText(ledger)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
