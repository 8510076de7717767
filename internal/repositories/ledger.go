package repositories

import (
	"fmt"

	"github.com/trackferry/trackferry/internal/models"
	"github.com/trackferry/trackferry/internal/tasks"
)

// RunRecorder persists finished transfer ledgers through a RunRepository.
type RunRecorder struct {
	repo *RunRepository
}

// NewRunRecorder creates a new RunRecorder with the given repository
func NewRunRecorder(repo *RunRepository) *RunRecorder {
	return &RunRecorder{repo: repo}
}

// RecordRun converts a transfer ledger into a run record and inserts it.
// Returns the assigned run ID.
func (a *RunRecorder) RecordRun(sourceFile string, ledger *tasks.Ledger) (string, error) {
	report := models.RunReport{
		PlaylistID:        ledger.PlaylistID,
		PlaylistName:      ledger.PlaylistName,
		TotalRequested:    ledger.TotalRequested,
		Added:             ledger.Added,
		SkippedDuplicates: ledger.SkippedDuplicates,
		NotFound:          ledger.NotFound,
		Failed:            ledger.Failed,
		QuotaSpent:        ledger.QuotaSpent,
		HaltedEarly:       ledger.HaltedEarly,
		StartedAt:         ledger.StartedAt,
		FinishedAt:        ledger.FinishedAt,
		Outcomes:          make([]models.RunOutcome, 0, len(ledger.Outcomes)),
	}

	for _, outcome := range ledger.Outcomes {
		detail := outcome.Err
		if detail == "" && outcome.MatchedTitle != "" {
			detail = fmt.Sprintf("matched %q", outcome.MatchedTitle)
		}

		report.Outcomes = append(report.Outcomes, models.RunOutcome{
			InputTitle: outcome.Song,
			Status:     string(outcome.Status),
			TrackID:    outcome.TrackID,
			Detail:     detail,
			Attempts:   outcome.Attempts,
		})
	}

	run := models.NewRun(sourceFile, report)
	if err := a.repo.Create(run); err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	return run.ID(), nil
}
