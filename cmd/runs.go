package main

import (
	"context"
	"fmt"
	"time"

	"github.com/trackferry/trackferry/internal/models"
	"github.com/trackferry/trackferry/internal/repositories"
	"github.com/trackferry/trackferry/internal/shared"
	"github.com/urfave/cli/v3"
)

// runView flattens a stored run for JSON output.
type runView struct {
	ID                string              `json:"id"`
	SourceFile        string              `json:"source_file,omitempty"`
	PlaylistID        string              `json:"playlist_id"`
	PlaylistName      string              `json:"playlist_name"`
	TotalRequested    int                 `json:"total_requested"`
	Added             int                 `json:"added"`
	SkippedDuplicates int                 `json:"skipped_duplicates"`
	NotFound          int                 `json:"not_found"`
	Failed            int                 `json:"failed"`
	QuotaSpent        int                 `json:"quota_spent"`
	HaltedEarly       bool                `json:"halted_early"`
	StartedAt         string              `json:"started_at"`
	FinishedAt        string              `json:"finished_at,omitempty"`
	Outcomes          []models.RunOutcome `json:"outcomes,omitempty"`
}

func newRunView(run *models.Run, withOutcomes bool) runView {
	report := run.Report()
	view := runView{
		ID:                run.ID(),
		SourceFile:        run.SourceFile(),
		PlaylistID:        report.PlaylistID,
		PlaylistName:      report.PlaylistName,
		TotalRequested:    report.TotalRequested,
		Added:             report.Added,
		SkippedDuplicates: report.SkippedDuplicates,
		NotFound:          report.NotFound,
		Failed:            report.Failed,
		QuotaSpent:        report.QuotaSpent,
		HaltedEarly:       report.HaltedEarly,
		StartedAt:         report.StartedAt.UTC().Format(time.RFC3339),
	}
	if !report.FinishedAt.IsZero() {
		view.FinishedAt = report.FinishedAt.UTC().Format(time.RFC3339)
	}
	if withOutcomes {
		view.Outcomes = report.Outcomes
	}
	return view
}

// RunsList lists recorded transfer runs, newest first.
func (r *Runner) RunsList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	repo, cleanup, err := r.openRunRepository()
	if err != nil {
		return err
	}
	defer cleanup()

	criteria := map[string]any{}
	if playlist := cmd.String("playlist"); playlist != "" {
		criteria["playlist_id"] = playlist
	}
	if cmd.Bool("halted") {
		criteria["halted_early"] = true
	}
	if limit := cmd.Int("limit"); limit > 0 {
		criteria["limit"] = int(limit)
	}

	runs, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if useJSON {
		views := make([]runView, 0, len(runs))
		for _, run := range runs {
			views = append(views, newRunView(run, false))
		}
		return r.writeJSON(views, true)
	}

	if len(runs) == 0 {
		return r.writePlain("No recorded runs.\n")
	}

	r.writePlain("Found %d runs:\n\n", len(runs))
	for i, run := range runs {
		report := run.Report()
		r.writePlain("%d. %s\n", i+1, run.ID())
		r.writePlain("   Playlist: %s (%s)\n", report.PlaylistName, report.PlaylistID)
		r.writePlain("   Started: %s\n", report.StartedAt.Format(time.RFC3339))
		r.writePlain("   Added %d of %d (skipped %d, not found %d, failed %d)\n",
			report.Added, report.TotalRequested, report.SkippedDuplicates, report.NotFound, report.Failed)
		if report.HaltedEarly {
			r.writePlain("   ⛔ Halted early (quota budget)\n")
		}
		r.writePlain("\n")
	}

	return nil
}

// RunsShow prints one recorded run with its per-song outcomes.
func (r *Runner) RunsShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: run id is required", shared.ErrMissingArgument)
	}

	repo, cleanup, err := r.openRunRepository()
	if err != nil {
		return err
	}
	defer cleanup()

	run, err := repo.Get(id)
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(newRunView(run, true), true)
	}

	report := run.Report()
	r.writePlainHeader(fmt.Sprintf("Run %s", run.ID()))
	if run.SourceFile() != "" {
		r.writePlain("Source: %s\n", run.SourceFile())
	}
	r.writePlain("Playlist: %s (%s)\n", report.PlaylistName, report.PlaylistID)
	r.writePlain("Started: %s\n", report.StartedAt.Format(time.RFC3339))
	if !report.FinishedAt.IsZero() {
		r.writePlain("Finished: %s\n", report.FinishedAt.Format(time.RFC3339))
	}
	r.writePlain("Requested: %d  Added: %d  Skipped: %d  Not found: %d  Failed: %d\n",
		report.TotalRequested, report.Added, report.SkippedDuplicates, report.NotFound, report.Failed)
	r.writePlain("Quota spent: %d\n", report.QuotaSpent)
	if report.HaltedEarly {
		r.writePlain("⛔ Halted early (quota budget)\n")
	}

	r.writePlain("\nOutcomes:\n")
	for i, o := range report.Outcomes {
		r.writePlain("%d. %s [%s]", i+1, o.InputTitle, o.Status)
		if o.Detail != "" {
			r.writePlain(" %s", o.Detail)
		}
		r.writePlain("\n")
	}

	return nil
}

// openRunRepository opens the configured database and returns the run
// repository with a cleanup func for the connection.
func (r *Runner) openRunRepository() (*repositories.RunRepository, func(), error) {
	db, err := openDatabase(r.config)
	if err != nil {
		return nil, nil, err
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repositories.NewRunRepository(db), func() { db.Close() }, nil
}
