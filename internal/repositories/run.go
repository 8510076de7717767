package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/trackferry/trackferry/internal/models"
	"github.com/trackferry/trackferry/internal/shared"
)

// RunRepository implements models.Repository[*models.Run] for transfer run history.
//
// A run and its outcome rows are written atomically. Deletes are hard deletes
// since run history is operator-managed, not user-facing data.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a run and its per-song outcomes in a single transaction, assigning a generated ID
func (r *RunRepository) Create(run *models.Run) error {
	id := shared.GenerateID()
	run.SetID(id)

	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	report := run.Report()

	query := `
		INSERT INTO runs (
			id, source_file, playlist_id, playlist_name, total_requested,
			added, skipped_duplicates, not_found, failed, quota_spent,
			halted_early, started_at, finished_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var finishedAt any = report.FinishedAt
	if report.FinishedAt.IsZero() {
		finishedAt = nil
	}

	_, err = tx.Exec(query,
		id,
		run.SourceFile(),
		report.PlaylistID,
		report.PlaylistName,
		report.TotalRequested,
		report.Added,
		report.SkippedDuplicates,
		report.NotFound,
		report.Failed,
		report.QuotaSpent,
		report.HaltedEarly,
		report.StartedAt,
		finishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	outcomeQuery := `
		INSERT INTO run_outcomes (run_id, input_title, status, track_id, detail, attempts)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	for _, outcome := range report.Outcomes {
		var trackID any = outcome.TrackID
		if outcome.TrackID == "" {
			trackID = nil
		}

		var detail any = outcome.Detail
		if outcome.Detail == "" {
			detail = nil
		}

		_, err = tx.Exec(outcomeQuery, id, outcome.InputTitle, outcome.Status, trackID, detail, outcome.Attempts)
		if err != nil {
			return fmt.Errorf("failed to insert run outcome: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run transaction: %w", err)
	}

	return nil
}

// Get retrieves a run by ID, including its per-song outcomes
func (r *RunRepository) Get(id string) (*models.Run, error) {
	query := `
		SELECT
			id, source_file, playlist_id, playlist_name, total_requested,
			added, skipped_duplicates, not_found, failed, quota_spent,
			halted_early, started_at, finished_at
		FROM runs
		WHERE id = ?
	`

	run, err := r.scanRun(r.db.QueryRow(query, id))
	if err != nil {
		return nil, err
	}

	outcomes, err := r.loadOutcomes(run.ID())
	if err != nil {
		return nil, err
	}

	report := run.Report()
	report.Outcomes = outcomes

	loaded := models.NewRun(run.SourceFile(), report)
	loaded.SetID(run.ID())
	return loaded, nil
}

// Delete removes a run and its outcomes from the database
func (r *RunRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM run_outcomes WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete run outcomes: %w", err)
	}

	result, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("run not found: %s", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}

	return nil
}

// List retrieves run summaries matching the given criteria, most recent first.
//
// Outcomes are not loaded; use Get for a single run's full detail.
// Supported criteria: "playlist_id" (string), "halted_early" (bool), "limit" (int).
func (r *RunRepository) List(criteria map[string]any) ([]*models.Run, error) {
	query := `
		SELECT
			id, source_file, playlist_id, playlist_name, total_requested,
			added, skipped_duplicates, not_found, failed, quota_spent,
			halted_early, started_at, finished_at
		FROM runs
		WHERE 1 = 1
	`

	args := []any{}

	if playlistID, ok := criteria["playlist_id"].(string); ok && playlistID != "" {
		query += " AND playlist_id = ?"
		args = append(args, playlistID)
	}

	if haltedEarly, ok := criteria["halted_early"].(bool); ok && haltedEarly {
		query += " AND halted_early = 1"
	}

	query += " ORDER BY started_at DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := r.scanRunRow(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}

// loadOutcomes fetches the outcome rows for a run in insertion order
func (r *RunRepository) loadOutcomes(runID string) ([]models.RunOutcome, error) {
	query := `
		SELECT input_title, status, track_id, detail, attempts
		FROM run_outcomes
		WHERE run_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []models.RunOutcome
	for rows.Next() {
		var (
			inputTitle string
			status     string
			trackID    sql.NullString
			detail     sql.NullString
			attempts   int
		)

		if err := rows.Scan(&inputTitle, &status, &trackID, &detail, &attempts); err != nil {
			return nil, fmt.Errorf("failed to scan run outcome: %w", err)
		}

		outcomes = append(outcomes, models.RunOutcome{
			InputTitle: inputTitle,
			Status:     status,
			TrackID:    trackID.String,
			Detail:     detail.String,
			Attempts:   attempts,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return outcomes, nil
}

// scanRun scans a single [sql.Row] into a [models.Run]
func (r *RunRepository) scanRun(row *sql.Row) (*models.Run, error) {
	var (
		id         string
		sourceFile string
		report     models.RunReport
		finishedAt sql.NullTime
		startedAt  time.Time
	)

	err := row.Scan(
		&id, &sourceFile, &report.PlaylistID, &report.PlaylistName, &report.TotalRequested,
		&report.Added, &report.SkippedDuplicates, &report.NotFound, &report.Failed, &report.QuotaSpent,
		&report.HaltedEarly, &startedAt, &finishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	report.StartedAt = startedAt
	if finishedAt.Valid {
		report.FinishedAt = finishedAt.Time
	}

	run := models.NewRun(sourceFile, report)
	run.SetID(id)
	return run, nil
}

// scanRunRow scans a row from [sql.Rows] into a [models.Run]
func (r *RunRepository) scanRunRow(rows *sql.Rows) (*models.Run, error) {
	var (
		id         string
		sourceFile string
		report     models.RunReport
		finishedAt sql.NullTime
		startedAt  time.Time
	)

	err := rows.Scan(
		&id, &sourceFile, &report.PlaylistID, &report.PlaylistName, &report.TotalRequested,
		&report.Added, &report.SkippedDuplicates, &report.NotFound, &report.Failed, &report.QuotaSpent,
		&report.HaltedEarly, &startedAt, &finishedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	report.StartedAt = startedAt
	if finishedAt.Valid {
		report.FinishedAt = finishedAt.Time
	}

	run := models.NewRun(sourceFile, report)
	run.SetID(id)
	return run, nil
}
