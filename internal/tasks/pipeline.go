package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/trackferry/trackferry/internal/normalize"
	"github.com/trackferry/trackferry/internal/shared"
)

// noResultsPause is the fixed delay between attempts when a search
// comes back empty. A content miss is not a transient fault, so it
// gets a short pause rather than exponential backoff.
const noResultsPause = time.Second

// processItem runs the search, match, duplicate-check, add pipeline for
// one song. Transient errors are retried with exponential backoff up to
// the attempt cap; a structurally malformed response is terminal
// immediately. The returned outcome never carries an error value out of
// this boundary; failures are folded into the ledger entry.
func (e *TransferEngine) processItem(ctx context.Context, song, playlistID string, existingIDs, addedIDs map[string]struct{}) Outcome {
	outcome := Outcome{Song: song, Status: StatusFailed, Err: "unknown error"}

	query := normalize.SanitizeQuery(song)
	if query == "" {
		outcome.Err = "title is empty after sanitization"
		return outcome
	}

	noResults := false
	for attempt := 0; attempt < e.opts.MaxRetries; attempt++ {
		outcome.Attempts = attempt + 1
		noResults = false

		if err := e.limiter.Wait(ctx); err != nil {
			outcome.Err = err.Error()
			return outcome
		}

		tracks, err := e.client.Search(ctx, query, 1)
		// The provider bills the request whether or not it succeeds.
		e.quota.Charge(e.costs.Search)
		if err != nil {
			if errors.Is(err, shared.ErrMalformedResponse) {
				outcome.Err = err.Error()
				return outcome
			}
			outcome.Err = err.Error()
			e.logger.Warn("search attempt failed", "song", song, "attempt", attempt+1, "err", err)
			if e.backoff(ctx, attempt) != nil {
				return outcome
			}
			continue
		}

		if len(tracks) == 0 {
			outcome.Err = "no search results found"
			noResults = true
			if e.sleep(ctx, noResultsPause) != nil {
				return outcome
			}
			continue
		}

		// The query is engineered to bias relevance; trust the top result.
		best := tracks[0]
		if best.TrackID == "" {
			outcome.Err = "search result missing track id"
			return outcome
		}

		if _, dup := existingIDs[best.TrackID]; dup {
			outcome.Status = StatusDuplicateInTarget
			outcome.TrackID = best.TrackID
			outcome.MatchedTitle = best.Title
			outcome.Err = ""
			return outcome
		}
		if _, dup := addedIDs[best.TrackID]; dup {
			outcome.Status = StatusDuplicateInBatch
			outcome.TrackID = best.TrackID
			outcome.MatchedTitle = best.Title
			outcome.Err = ""
			return outcome
		}

		if err := e.limiter.Wait(ctx); err != nil {
			outcome.Err = err.Error()
			return outcome
		}

		if err := e.client.AddItem(ctx, playlistID, best.TrackID); err != nil {
			outcome.Err = err.Error()
			e.logger.Warn("add attempt failed", "song", song, "attempt", attempt+1, "err", err)
			if e.backoff(ctx, attempt) != nil {
				return outcome
			}
			continue
		}
		e.quota.Charge(e.costs.Insert)

		outcome.Status = StatusAdded
		outcome.TrackID = best.TrackID
		outcome.MatchedTitle = best.Title
		outcome.Err = ""
		return outcome
	}

	if noResults {
		outcome.Status = StatusNotFound
	}
	return outcome
}

// backoff sleeps 2^attempt seconds between retries of transient faults.
func (e *TransferEngine) backoff(ctx context.Context, attempt int) error {
	return e.sleep(ctx, time.Duration(1<<attempt)*time.Second)
}
