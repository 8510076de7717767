package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/trackferry/trackferry/internal/tasks"
	th "github.com/trackferry/trackferry/internal/testing"
)

func sampleLedger() *tasks.Ledger {
	return &tasks.Ledger{
		PlaylistID:        "PL123",
		PlaylistName:      "Road Trip",
		TotalRequested:    4,
		Added:             2,
		SkippedDuplicates: 1,
		NotFound:          1,
		Failed:            0,
		Outcomes: []tasks.Outcome{
			{Song: "Bohemian Rhapsody", Status: tasks.StatusAdded, TrackID: "vid1", Attempts: 1},
			{Song: "Hotel California", Status: tasks.StatusAdded, TrackID: "vid2", Attempts: 2},
			{Song: "Bohemian Rhapsody (Remastered)", Status: tasks.StatusDuplicateInBatch, MatchedTitle: "Bohemian Rhapsody"},
			{Song: "Obscure B-Side", Status: tasks.StatusNotFound, Err: "no search results found", Attempts: 3},
		},
		QuotaSpent: 450,
		StartedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2024, 6, 1, 12, 1, 32, 0, time.UTC),
	}
}

func TestReporters(t *testing.T) {
	t.Run("ReportToCSV", func(t *testing.T) {
		data, err := ReportToCSV(sampleLedger())
		if err != nil {
			t.Fatalf("ReportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Song,Status,TrackID,MatchedTitle,Attempts,Error") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "Bohemian Rhapsody,added,vid1,,1,") {
			t.Errorf("CSV missing added row, got: %s", output)
		}
		if !strings.Contains(output, "skipped_duplicate_batch") {
			t.Errorf("CSV missing duplicate status")
		}
		if !strings.Contains(output, "no search results found") {
			t.Errorf("CSV missing error detail")
		}
	})

	t.Run("ReportToMarkdown", func(t *testing.T) {
		data, err := ReportToMarkdown(sampleLedger())
		if err != nil {
			t.Fatalf("ReportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Road Trip") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "**Added**: 2") {
			t.Errorf("Markdown missing added count")
		}
		if !strings.Contains(output, "**Quota spent**: 450") {
			t.Errorf("Markdown missing quota spent")
		}
		if !strings.Contains(output, "**Duration**: 1m32s") {
			t.Errorf("Markdown missing duration, got: %s", output)
		}
		if !strings.Contains(output, "## Results") {
			t.Errorf("Markdown missing results section")
		}
		if !strings.Contains(output, "1. Bohemian Rhapsody [added]") {
			t.Errorf("Markdown missing first result, got: %s", output)
		}
		if !strings.Contains(output, `(matched "Bohemian Rhapsody")`) {
			t.Errorf("Markdown missing matched title detail")
		}
		if strings.Contains(output, "## Unprocessed") {
			t.Errorf("Markdown should not include unprocessed section for a complete run")
		}
	})

	t.Run("ReportToMarkdownHalted", func(t *testing.T) {
		ledger := sampleLedger()
		ledger.HaltedEarly = true
		ledger.Unprocessed = []string{"Song A", "Song B"}

		data, err := ReportToMarkdown(ledger)
		if err != nil {
			t.Fatalf("ReportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "## Unprocessed") {
			t.Errorf("Markdown missing unprocessed section")
		}
		if !strings.Contains(output, "- Song A") || !strings.Contains(output, "- Song B") {
			t.Errorf("Markdown missing unprocessed entries, got: %s", output)
		}
	})

	t.Run("ReportToText", func(t *testing.T) {
		data, err := ReportToText(sampleLedger())
		if err != nil {
			t.Fatalf("ReportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Playlist: Road Trip (PL123)") {
			t.Errorf("Text missing playlist line")
		}
		if !strings.Contains(output, "Requested: 4  Added: 2  Skipped: 1  Not found: 1  Failed: 0") {
			t.Errorf("Text missing summary line, got: %s", output)
		}
		if !strings.Contains(output, "4. Obscure B-Side [not_found]") {
			t.Errorf("Text missing result line")
		}
	})

	t.Run("ToSummaryJSON", func(t *testing.T) {
		data, err := ToSummaryJSON(sampleLedger())
		if err != nil {
			t.Fatalf("ToSummaryJSON failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, `"playlist_id": "PL123"`) {
			t.Errorf("JSON missing playlist_id field, got: %s", output)
		}
		if !strings.Contains(output, `"added": 2`) {
			t.Errorf("JSON missing added field")
		}
		if !strings.Contains(output, `"quota_spent": 450`) {
			t.Errorf("JSON missing quota_spent field")
		}
		if !strings.Contains(output, `"started_at": "2024-06-01T12:00:00Z"`) {
			t.Errorf("JSON missing started_at field, got: %s", output)
		}
		if strings.Contains(output, `"unprocessed"`) {
			t.Errorf("JSON should omit empty unprocessed list")
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteCSVReport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVReport(sampleLedger(), "")
			if err != nil {
				t.Fatalf("WriteCSVReport failed: %v", err)
			}

			if result.ResultsFile != "PL123_results.csv" {
				t.Errorf("Expected results file 'PL123_results.csv', got '%s'", result.ResultsFile)
			}
			if result.SummaryFile != "PL123_summary.json" {
				t.Errorf("Expected summary file 'PL123_summary.json', got '%s'", result.SummaryFile)
			}

			th.AssertFileExists(t, result.ResultsFile)
			th.AssertFileExists(t, result.SummaryFile)

			csvContent := th.MustReadFile(t, result.ResultsFile)
			if !strings.Contains(csvContent, "Song,Status,TrackID,MatchedTitle,Attempts,Error") {
				t.Errorf("CSV missing headers")
			}

			summaryContent := th.MustReadFile(t, result.SummaryFile)
			if !strings.Contains(summaryContent, "PL123") || !strings.Contains(summaryContent, "Road Trip") {
				t.Errorf("Summary JSON missing expected fields")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVReport(sampleLedger(), "custom_run")
			if err != nil {
				t.Fatalf("WriteCSVReport failed: %v", err)
			}

			if result.ResultsFile != "custom_run_results.csv" {
				t.Errorf("Expected 'custom_run_results.csv', got '%s'", result.ResultsFile)
			}
			th.AssertFileExists(t, result.ResultsFile)
			th.AssertFileExists(t, result.SummaryFile)
		})
	})

	t.Run("WriteMarkdownReport", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		filepath, err := WriteMarkdownReport(sampleLedger(), "")
		if err != nil {
			t.Fatalf("WriteMarkdownReport failed: %v", err)
		}

		if filepath != "PL123_report.md" {
			t.Errorf("Expected 'PL123_report.md', got '%s'", filepath)
		}
		th.AssertFileExists(t, filepath)

		content := th.MustReadFile(t, filepath)
		if !strings.Contains(content, "# Road Trip") {
			t.Errorf("Markdown missing title")
		}
	})

	t.Run("WriteTextReport", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		filepath, err := WriteTextReport(sampleLedger(), "my_run.txt")
		if err != nil {
			t.Fatalf("WriteTextReport failed: %v", err)
		}

		if filepath != "my_run.txt" {
			t.Errorf("Expected 'my_run.txt', got '%s'", filepath)
		}
		th.AssertFileExists(t, filepath)

		content := th.MustReadFile(t, filepath)
		if !strings.Contains(content, "Playlist: Road Trip (PL123)") {
			t.Errorf("Text missing playlist line")
		}
	})
}
