package tasks

import "fmt"

// ProgressUpdate represents a progress event during a transfer run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveTarget Phase = iota
	FetchExisting
	PreFilter
	ProcessBatch
	ItemDone
	QuotaHalt
	Done
)

func (p Phase) String() string {
	switch p {
	case ResolveTarget:
		return "resolve_target"
	case FetchExisting:
		return "fetch_existing"
	case PreFilter:
		return "pre_filter"
	case ProcessBatch:
		return "process_batch"
	case ItemDone:
		return "item_done"
	case QuotaHalt:
		return "quota_halt"
	case Done:
		return "done"
	default:
		return ""
	}
}

func resolveTargetUpdate(target Target) ProgressUpdate {
	msg := fmt.Sprintf("Adding to existing playlist %s...", target.PlaylistID)
	if target.PlaylistID == "" {
		msg = fmt.Sprintf("Creating playlist %q...", target.Name)
	}
	return ProgressUpdate{Phase: ResolveTarget, Step: 1, Total: 1, Message: msg}
}

func fetchExistingUpdate(playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchExisting,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching current items of playlist %s...", playlistID),
	}
}

func preFilterUpdate(step, total int, song, matched string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PreFilter,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Already in playlist: %s (matches %q)", step, total, song, matched),
	}
}

func processBatchUpdate(start, end, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ProcessBatch,
		Step:    start + 1,
		Total:   total,
		Message: fmt.Sprintf("Processing songs %d-%d of %d...", start+1, end, total),
	}
}

func itemDoneUpdate(step, total int, outcome Outcome) ProgressUpdate {
	var msg string
	switch outcome.Status {
	case StatusAdded:
		msg = fmt.Sprintf("[%d/%d] ✓ %s", step, total, outcome.Song)
	case StatusDuplicateInTarget, StatusDuplicateInBatch:
		msg = fmt.Sprintf("[%d/%d] ≡ %s (duplicate)", step, total, outcome.Song)
	case StatusNotFound:
		msg = fmt.Sprintf("[%d/%d] ? %s (not found)", step, total, outcome.Song)
	default:
		msg = fmt.Sprintf("[%d/%d] ✗ %s: %s", step, total, outcome.Song, outcome.Err)
	}
	return ProgressUpdate{Phase: ItemDone, Step: step, Total: total, Message: msg, Data: outcome}
}

func quotaHaltUpdate(processed, total, remaining int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   QuotaHalt,
		Step:    processed,
		Total:   total,
		Message: fmt.Sprintf("Quota budget reached: %d of %d songs processed (%d units left)", processed, total, remaining),
	}
}

func doneUpdate(ledger *Ledger) ProgressUpdate {
	return ProgressUpdate{
		Phase: Done,
		Step:  ledger.Processed(),
		Total: ledger.TotalRequested,
		Message: fmt.Sprintf("Done: %d added, %d duplicates, %d not found, %d failed",
			ledger.Added, ledger.SkippedDuplicates, ledger.NotFound, ledger.Failed),
		Data: ledger,
	}
}
