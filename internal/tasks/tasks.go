// package tasks implements the batch playlist transfer pipeline.
//
// The core abstraction is TransferEngine, which resolves a target
// playlist, walks the deduplicated song list in batches, and reconciles
// each song against the catalog under rate and quota limits. Operations
// emit progress updates via channels for non-blocking status reporting
// to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/trackferry/trackferry/internal/catalog"
	"github.com/trackferry/trackferry/internal/match"
	"github.com/trackferry/trackferry/internal/normalize"
	"github.com/trackferry/trackferry/internal/pacing"
	"github.com/trackferry/trackferry/internal/shared"
)

// Status is the terminal state of one song's transfer attempt.
type Status string

const (
	StatusAdded             Status = "added"
	StatusDuplicateInTarget Status = "skipped_duplicate_target"
	StatusDuplicateInBatch  Status = "skipped_duplicate_batch"
	StatusNotFound          Status = "not_found"
	StatusFailed            Status = "failed"
)

// IsSkip reports whether the status is a duplicate skip rather than a
// success or failure.
func (s Status) IsSkip() bool {
	return s == StatusDuplicateInTarget || s == StatusDuplicateInBatch
}

// Outcome records how a single song finished. Immutable once appended
// to the ledger.
type Outcome struct {
	Song         string
	Status       Status
	TrackID      string
	MatchedTitle string
	Err          string
	Attempts     int
}

// Ledger accumulates per-song outcomes and counters for one run, in
// input order. When a quota halt occurs the unprocessed remainder is
// reported explicitly, never silently dropped.
type Ledger struct {
	PlaylistID     string
	PlaylistName   string
	TotalRequested int

	Added             int
	SkippedDuplicates int
	NotFound          int
	Failed            int

	Outcomes    []Outcome
	HaltedEarly bool
	Unprocessed []string
	QuotaSpent  int

	StartedAt  time.Time
	FinishedAt time.Time
}

// record appends an outcome and bumps the matching counter.
func (l *Ledger) record(o Outcome) {
	l.Outcomes = append(l.Outcomes, o)
	switch {
	case o.Status == StatusAdded:
		l.Added++
	case o.Status.IsSkip():
		l.SkippedDuplicates++
	case o.Status == StatusNotFound:
		l.NotFound++
	default:
		l.Failed++
	}
}

// Processed returns how many songs reached a terminal outcome.
func (l *Ledger) Processed() int {
	return len(l.Outcomes)
}

// Target identifies where songs go: an existing playlist by id, or a
// new playlist created at run start.
type Target struct {
	PlaylistID  string
	Name        string
	Description string
	Privacy     catalog.Privacy
}

// NewPlaylist targets a playlist to be created. The name is suffixed
// with +1, +2, ... if the account already owns a same-named playlist.
func NewPlaylist(name, description string, privacy catalog.Privacy) Target {
	return Target{Name: name, Description: description, Privacy: privacy}
}

// ExistingPlaylist targets a playlist the account already owns.
func ExistingPlaylist(id string) Target {
	return Target{PlaylistID: id}
}

// Options tunes a transfer run. Zero values fall back to defaults.
type Options struct {
	MaxRetries       int
	BatchSize        int
	ItemLimit        int
	SimThreshold     float64
	OverlapThreshold float64

	// PreFilter runs the alias-aware matcher against existing playlist
	// titles before spending any search quota.
	PreFilter bool
}

const (
	defaultMaxRetries = 3
	defaultBatchSize  = 1200
	defaultItemLimit  = 5000
)

func (o Options) withDefaults() Options {
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetries
	}
	if o.BatchSize <= 0 {
		o.BatchSize = defaultBatchSize
	}
	if o.ItemLimit <= 0 {
		o.ItemLimit = defaultItemLimit
	}
	if o.SimThreshold <= 0 {
		o.SimThreshold = match.DefaultSimThreshold
	}
	if o.OverlapThreshold <= 0 {
		o.OverlapThreshold = match.DefaultOverlapThreshold
	}
	return o
}

// TransferEngine owns all mutable run state: the ledger, the added-ids
// set, the limiter clock, and the quota counter. Exactly one logical
// task touches them at a time; items are processed strictly
// sequentially because the catalog API is rate limited per account and
// the duplicate sets must be read and updated atomically per item.
type TransferEngine struct {
	client  catalog.Client
	limiter *pacing.Limiter
	quota   *pacing.Quota
	costs   pacing.Costs
	opts    Options
	logger  *log.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// NewTransferEngine creates an engine around an authenticated catalog
// client. The limiter and quota are owned by the caller so their state
// can span multiple runs in one session.
func NewTransferEngine(client catalog.Client, limiter *pacing.Limiter, quota *pacing.Quota, costs pacing.Costs, opts Options, logger *log.Logger) *TransferEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &TransferEngine{
		client:  client,
		limiter: limiter,
		quota:   quota,
		costs:   costs,
		opts:    opts.withDefaults(),
		logger:  logger,
		sleep:   sleepCtx,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *TransferEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run transfers songs into the target playlist and returns the
// finalized ledger. Per-song failures never abort the run; only quota
// exhaustion and an unusable target end it early, and both return a
// partial ledger rather than an error mid-flight.
func (e *TransferEngine) Run(ctx context.Context, songs []string, target Target, progress chan<- ProgressUpdate) (*Ledger, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: catalog client not initialized", shared.ErrServiceUnavailable)
	}

	deduped := dedupeExact(songs)
	ledger := &Ledger{TotalRequested: len(deduped), StartedAt: time.Now()}
	startConsumed := e.quota.Consumed()
	finish := func() {
		ledger.FinishedAt = time.Now()
		ledger.QuotaSpent = e.quota.Consumed() - startConsumed
	}

	if len(deduped) > e.opts.ItemLimit {
		e.logger.Warn("song list truncated", "limit", e.opts.ItemLimit, "requested", len(deduped))
		ledger.Unprocessed = append(ledger.Unprocessed, deduped[e.opts.ItemLimit:]...)
		deduped = deduped[:e.opts.ItemLimit]
	}

	if target.PlaylistID == "" && e.quota.WouldExceed(e.costs.Create) {
		ledger.HaltedEarly = true
		ledger.Unprocessed = append(ledger.Unprocessed, deduped...)
		e.logger.Warn("halting before quota budget is exceeded",
			"projected", e.costs.Create, "remaining", e.quota.Remaining())
		e.sendProgress(progress, quotaHaltUpdate(0, ledger.TotalRequested, e.quota.Remaining()))
		finish()
		return ledger, nil
	}

	e.sendProgress(progress, resolveTargetUpdate(target))
	playlistID, playlistName, err := e.resolveTarget(ctx, target)
	if err != nil {
		finish()
		return ledger, err
	}
	ledger.PlaylistID = playlistID
	ledger.PlaylistName = playlistName

	existingIDs := make(map[string]struct{})
	var existingTitles []string
	if target.PlaylistID != "" {
		e.sendProgress(progress, fetchExistingUpdate(playlistID))
		existingIDs, existingTitles, err = e.fetchExistingItems(ctx, playlistID)
		if err != nil {
			finish()
			return ledger, err
		}

		// The catalog caps playlists at ItemLimit entries, so only the
		// remaining capacity is worth processing.
		capacity := e.opts.ItemLimit - len(existingIDs)
		if capacity < 0 {
			capacity = 0
		}
		if len(deduped) > capacity {
			e.logger.Warn("song list truncated to playlist capacity",
				"capacity", capacity, "existing", len(existingIDs), "requested", len(deduped))
			ledger.Unprocessed = append(ledger.Unprocessed, deduped[capacity:]...)
			deduped = deduped[:capacity]
		}
	}

	remaining := deduped
	if e.opts.PreFilter && len(existingTitles) > 0 {
		remaining = e.preFilter(deduped, existingTitles, ledger, progress)
	}

	addedIDs := make(map[string]struct{})
	for start := 0; start < len(remaining); start += e.opts.BatchSize {
		end := min(start+e.opts.BatchSize, len(remaining))
		batch := remaining[start:end]

		projected := e.costs.Batch(len(batch))
		if e.quota.WouldExceed(projected) {
			ledger.HaltedEarly = true
			ledger.Unprocessed = append(ledger.Unprocessed, remaining[start:]...)
			e.logger.Warn("halting before quota budget is exceeded",
				"processed", ledger.Processed(), "unprocessed", len(ledger.Unprocessed),
				"projected", projected, "remaining", e.quota.Remaining())
			e.sendProgress(progress, quotaHaltUpdate(ledger.Processed(), ledger.TotalRequested, e.quota.Remaining()))
			break
		}

		e.sendProgress(progress, processBatchUpdate(start, end, len(remaining)))
		for _, song := range batch {
			outcome := e.processItem(ctx, song, playlistID, existingIDs, addedIDs)
			if outcome.Status == StatusAdded {
				addedIDs[outcome.TrackID] = struct{}{}
			}
			ledger.record(outcome)
			e.sendProgress(progress, itemDoneUpdate(ledger.Processed(), len(remaining), outcome))
		}
	}

	finish()
	e.sendProgress(progress, doneUpdate(ledger))
	return ledger, nil
}

// resolveTarget returns the playlist id and display name, creating the
// playlist when the target names a new one.
func (e *TransferEngine) resolveTarget(ctx context.Context, target Target) (string, string, error) {
	if target.PlaylistID != "" {
		if owned, err := e.client.ListOwnedPlaylists(ctx); err == nil {
			for _, pl := range owned {
				if pl.ID == target.PlaylistID {
					return target.PlaylistID, pl.Title, nil
				}
			}
		} else {
			e.logger.Debug("could not resolve playlist title", "id", target.PlaylistID, "err", err)
		}
		// The id doubles as the display name when the title lookup misses.
		return target.PlaylistID, target.PlaylistID, nil
	}

	name := normalize.SanitizeQuery(target.Name)
	if name == "" {
		return "", "", fmt.Errorf("%w: playlist name is empty", shared.ErrInvalidInput)
	}

	owned, err := e.client.ListOwnedPlaylists(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to list playlists: %w", err)
	}

	taken := make(map[string]struct{}, len(owned))
	for _, pl := range owned {
		taken[strings.ToLower(strings.TrimSpace(pl.Title))] = struct{}{}
	}

	unique := name
	for suffix := 1; ; suffix++ {
		if _, exists := taken[strings.ToLower(strings.TrimSpace(unique))]; !exists {
			break
		}
		unique = fmt.Sprintf("%s +%d", name, suffix)
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return "", "", err
	}
	id, err := e.client.CreatePlaylist(ctx, unique, normalize.SanitizeQuery(target.Description), target.Privacy)
	if err != nil {
		return "", "", fmt.Errorf("failed to create playlist: %w", err)
	}
	e.quota.Charge(e.costs.Create)

	e.logger.Info("created playlist", "name", unique, "id", id)
	return id, unique, nil
}

// fetchExistingItems walks every page of the target playlist, building
// the id set and title list used for duplicate checks.
func (e *TransferEngine) fetchExistingItems(ctx context.Context, playlistID string) (map[string]struct{}, []string, error) {
	ids := make(map[string]struct{})
	var titles []string

	pageToken := ""
	for {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}

		page, err := e.client.ListPlaylistItems(ctx, playlistID, pageToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch playlist items: %w", err)
		}

		for _, item := range page.Items {
			if item.TrackID != "" {
				ids[item.TrackID] = struct{}{}
			}
			if item.Title != "" {
				titles = append(titles, item.Title)
			}
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	e.logger.Info("fetched existing playlist items", "playlist", playlistID, "count", len(ids))
	return ids, titles, nil
}

// preFilter skips songs whose titles already match the target playlist,
// recording an outcome for each so the ledger stays complete. False
// positives here only skip a song that was already present.
func (e *TransferEngine) preFilter(songs, existingTitles []string, ledger *Ledger, progress chan<- ProgressUpdate) []string {
	remaining := make([]string, 0, len(songs))
	for i, song := range songs {
		dup, matched := match.IsDuplicateAliasAware(song, existingTitles)
		if !dup {
			remaining = append(remaining, song)
			continue
		}

		ledger.record(Outcome{
			Song:         song,
			Status:       StatusDuplicateInTarget,
			MatchedTitle: matched,
		})
		e.sendProgress(progress, preFilterUpdate(i+1, len(songs), song, matched))
	}
	return remaining
}

// dedupeExact removes literal repeats from the input, keeping the first
// occurrence and preserving order. Fuzzy matching is deliberately not
// applied here; this only catches duplicate rows in the source file.
func dedupeExact(songs []string) []string {
	seen := make(map[string]struct{}, len(songs))
	out := make([]string, 0, len(songs))
	for _, s := range songs {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// sleepCtx blocks for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
