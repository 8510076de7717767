package models

import (
	"fmt"
	"time"
)

// RunOutcome records what happened to a single input title during a transfer run.
type RunOutcome struct {
	InputTitle string `json:"input_title"`
	Status     string `json:"status"`
	TrackID    string `json:"track_id,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Attempts   int    `json:"attempts"`
}

// RunReport carries the totals and timing of a finished transfer run.
type RunReport struct {
	PlaylistID        string
	PlaylistName      string
	TotalRequested    int
	Added             int
	SkippedDuplicates int
	NotFound          int
	Failed            int
	QuotaSpent        int
	HaltedEarly       bool
	StartedAt         time.Time
	FinishedAt        time.Time
	Outcomes          []RunOutcome
}

// Run is a database-backed record of a transfer run and its per-song outcomes.
type Run struct {
	id         string
	sourceFile string
	report     RunReport
}

// NewRun creates a Run for the given source file and report.
//
// The ID is assigned by the repository on insert.
func NewRun(sourceFile string, report RunReport) *Run {
	return &Run{sourceFile: sourceFile, report: report}
}

// ID returns the unique identifier for this run
func (r *Run) ID() string { return r.id }

// SetID assigns the unique identifier for this run
func (r *Run) SetID(id string) { r.id = id }

// SourceFile returns the path of the song list this run was created from
func (r *Run) SourceFile() string { return r.sourceFile }

// Report returns the run totals and per-song outcomes
func (r *Run) Report() RunReport { return r.report }

// Validate checks that the run carries the fields required for persistence
func (r *Run) Validate() error {
	if r.report.PlaylistID == "" {
		return fmt.Errorf("run playlist ID is required")
	}
	if r.report.PlaylistName == "" {
		return fmt.Errorf("run playlist name is required")
	}
	if r.report.StartedAt.IsZero() {
		return fmt.Errorf("run start time is required")
	}
	for i, outcome := range r.report.Outcomes {
		if outcome.InputTitle == "" {
			return fmt.Errorf("outcome %d is missing an input title", i)
		}
		if outcome.Status == "" {
			return fmt.Errorf("outcome %d is missing a status", i)
		}
	}
	return nil
}
