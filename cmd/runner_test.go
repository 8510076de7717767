package main

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/trackferry/trackferry/internal/shared"
	"github.com/trackferry/trackferry/internal/tasks"
	tu "github.com/trackferry/trackferry/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			client := &tu.MockCatalog{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "config.toml",
				Client:     client,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.configPath != "config.toml" {
				t.Errorf("expected configPath config.toml, got %s", runner.configPath)
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.client != client {
				t.Error("expected catalog client to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be constructed")
			}
			if runner.quota == nil || runner.limiter == nil {
				t.Error("expected quota and limiter to be constructed")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Fatal("expected default config to be set")
			}
			if runner.quota.Remaining() != runner.config.Quota.DailyBudget {
				t.Errorf("expected quota budget %d, got %d",
					runner.config.Quota.DailyBudget, runner.quota.Remaining())
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("printSummary", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		started := time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC)
		ledger := &tasks.Ledger{
			PlaylistID:     "PL42",
			PlaylistName:   "Workout",
			TotalRequested: 3,
			Added:          2,
			NotFound:       1,
			QuotaSpent:     350,
			StartedAt:      started,
			FinishedAt:     started.Add(42 * time.Second),
			Outcomes: []tasks.Outcome{
				{Song: "Song A", Status: tasks.StatusAdded, TrackID: "vid1"},
				{Song: "Song B", Status: tasks.StatusAdded, TrackID: "vid2"},
				{Song: "Obscure Song", Status: tasks.StatusNotFound},
			},
		}

		runner.printSummary(ledger)
		result := output.String()

		for _, want := range []string{
			"Transfer Complete!",
			"Workout (PL42)",
			"Requested: 3",
			"Added: 2",
			"Not found: 1",
			"Duration: 42s",
			"350 units spent",
			"Unmatched songs:",
			"Obscure Song (not_found)",
		} {
			if !strings.Contains(result, want) {
				t.Errorf("expected summary to contain %q, got:\n%s", want, result)
			}
		}

		if strings.Contains(result, "Halted early") {
			t.Error("did not expect halted warning for a complete run")
		}
	})

	t.Run("writeReport", func(t *testing.T) {
		ledger := &tasks.Ledger{
			PlaylistID:     "PL42",
			PlaylistName:   "Workout",
			TotalRequested: 1,
			Added:          1,
			StartedAt:      time.Now(),
			FinishedAt:     time.Now(),
			Outcomes:       []tasks.Outcome{{Song: "Song A", Status: tasks.StatusAdded, TrackID: "vid1"}},
		}

		t.Run("rejects unknown format", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeReport(ledger, "yaml", "")
			if err == nil {
				t.Fatal("expected error for unknown report format")
			}
		})

		t.Run("none writes nothing", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeReport(ledger, "none", ""); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.Len() != 0 {
				t.Errorf("expected no output, got %q", output.String())
			}
		})

		t.Run("csv writes results and summary", func(t *testing.T) {
			cwd := tu.MustGetwd(t)
			tu.MustChdir(t, t.TempDir())
			defer tu.MustChdir(t, cwd)

			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeReport(ledger, "csv", ""); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			tu.AssertFileExists(t, "PL42_results.csv")
			tu.AssertFileExists(t, "PL42_summary.json")
			if !strings.Contains(output.String(), "Report written") {
				t.Errorf("expected confirmation output, got %q", output.String())
			}
		})

		t.Run("markdown honors output path", func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "report.md")

			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			if err := runner.writeReport(ledger, "markdown", path); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			tu.AssertFileExists(t, path)
		})
	})
}
