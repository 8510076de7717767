package main

import (
	"context"
	"fmt"

	"github.com/trackferry/trackferry/internal/catalog"
	"github.com/trackferry/trackferry/internal/formatter"
	"github.com/trackferry/trackferry/internal/repositories"
	"github.com/trackferry/trackferry/internal/shared"
	"github.com/trackferry/trackferry/internal/songlist"
	"github.com/trackferry/trackferry/internal/tasks"
	"github.com/urfave/cli/v3"
)

// TransferRun runs a full CSV → YouTube playlist transfer.
func (r *Runner) TransferRun(ctx context.Context, cmd *cli.Command) error {
	sourceFile := cmd.String("file")

	target, err := buildTarget(cmd)
	if err != nil {
		return err
	}

	if r.client == nil {
		return fmt.Errorf("%w: catalog client not initialized, run 'trackferry auth login'", shared.ErrServiceUnavailable)
	}

	list, err := songlist.ParseFile(sourceFile)
	if err != nil {
		return err
	}

	if cmd.Bool("ui") {
		return r.runTUI(ctx, sourceFile, list.Titles, target)
	}

	r.logger.Info("starting transfer", "file", sourceFile, "songs", len(list.Titles))
	r.writePlain("Starting song list transfer...\n")
	r.writePlain("Source: %s (%d songs, column %q)\n\n", sourceFile, len(list.Titles), list.Column)

	// Progress goroutine drains updates while the engine runs
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.ResolveTarget:
				r.writePlain("📝 %s\n", update.Message)
			case tasks.FetchExisting:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.PreFilter, tasks.ItemDone:
				r.writePlain("   %s\n", update.Message)
			case tasks.QuotaHalt:
				r.writePlain("\n⛔ %s\n", update.Message)
			}
		}
	}()

	ledger, err := r.engine.Run(ctx, list.Titles, target, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	r.printSummary(ledger)

	if !cmd.Bool("no-history") {
		r.recordRun(sourceFile, ledger)
	}

	return r.writeReport(ledger, cmd.String("report"), cmd.String("output"))
}

// printSummary writes the post-run counters and quota state.
func (r *Runner) printSummary(ledger *tasks.Ledger) {
	r.writePlain("\n")
	r.writePlainHeader("Transfer Complete!")
	r.writePlain("Playlist: %s (%s)\n", ledger.PlaylistName, ledger.PlaylistID)
	r.writePlain("Requested: %d\n", ledger.TotalRequested)
	r.writePlain("Added: %d\n", ledger.Added)
	r.writePlain("Skipped duplicates: %d\n", ledger.SkippedDuplicates)
	r.writePlain("Not found: %d\n", ledger.NotFound)
	r.writePlain("Failed: %d\n", ledger.Failed)
	r.writePlain("Duration: %s\n", shared.FormatDuration(ledger.FinishedAt.Sub(ledger.StartedAt)))
	r.writePlain("Quota: %d units spent, %d remaining\n", ledger.QuotaSpent, r.quota.Remaining())

	if ledger.HaltedEarly {
		r.writePlain("\n⛔ Halted early: %d songs left unprocessed (quota budget)\n", len(ledger.Unprocessed))
	}

	if ledger.NotFound > 0 || ledger.Failed > 0 {
		r.writePlain("\nUnmatched songs:\n")
		for _, o := range ledger.Outcomes {
			if o.Status == tasks.StatusNotFound || o.Status == tasks.StatusFailed {
				r.writePlain("  - %s (%s)\n", o.Song, o.Status)
			}
		}
	}
}

// recordRun persists the run to the local database. Recording is best
// effort: failures warn and never fail the transfer itself.
func (r *Runner) recordRun(sourceFile string, ledger *tasks.Ledger) {
	db, err := openDatabase(r.config)
	if err != nil {
		r.logger.Warn("skipping run history", "error", err)
		return
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		r.logger.Warn("skipping run history", "error", err)
		return
	}

	recorder := repositories.NewRunRecorder(repositories.NewRunRepository(db))
	id, err := recorder.RecordRun(sourceFile, ledger)
	if err != nil {
		r.logger.Warn("failed to record run", "error", err)
		return
	}

	r.writePlain("\nRun recorded: %s (see 'trackferry runs show %s')\n", id, id)
}

// writeReport writes the run report in the requested format.
func (r *Runner) writeReport(ledger *tasks.Ledger, format, output string) error {
	switch format {
	case "none", "":
		return nil
	case "csv":
		result, err := formatter.WriteCSVReport(ledger, output)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		r.writePlain("Report written: %s\n", result.ResultsFile)
		r.writePlain("Summary written: %s\n", result.SummaryFile)
		return nil
	case "markdown", "md":
		path, err := formatter.WriteMarkdownReport(ledger, output)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		r.writePlain("Report written: %s\n", path)
		return nil
	case "text", "txt":
		path, err := formatter.WriteTextReport(ledger, output)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		r.writePlain("Report written: %s\n", path)
		return nil
	default:
		return fmt.Errorf("%w: report format must be csv, markdown, text, or none", shared.ErrInvalidFlag)
	}
}

// buildTarget resolves the destination flags into a transfer target.
// Exactly one of --playlist-id and --name must be given.
func buildTarget(cmd *cli.Command) (tasks.Target, error) {
	playlistID := cmd.String("playlist-id")
	name := cmd.String("name")

	if playlistID != "" && name != "" {
		return tasks.Target{}, fmt.Errorf("%w: use either --playlist-id or --name, not both", shared.ErrInvalidArgument)
	}
	if playlistID == "" && name == "" {
		return tasks.Target{}, fmt.Errorf("%w: either --playlist-id or --name is required", shared.ErrMissingArgument)
	}

	if playlistID != "" {
		return tasks.ExistingPlaylist(playlistID), nil
	}

	privacy := catalog.Privacy(cmd.String("privacy"))
	if privacy == "" {
		privacy = catalog.PrivacyPrivate
	}
	return tasks.NewPlaylist(name, cmd.String("description"), privacy), nil
}
