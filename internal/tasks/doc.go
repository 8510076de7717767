// Package tasks orchestrates batch playlist transfers with duplicate
// detection, pacing, quota accounting, and real-time progress reporting.
//
// # Core Operation
//
// [TransferEngine.Run] carries a deduplicated song list into a target
// playlist:
//
//  1. Resolve the target: create a playlist (auto-suffixing the name on
//     collision) or accept an existing playlist id.
//  2. Fetch the target's current items across all pages for duplicate
//     comparison, optionally pre-filtering obvious title-level
//     duplicates before any search quota is spent.
//  3. Walk the list in batches, halting cleanly at a batch boundary if
//     the projected cost would exceed the quota budget.
//  4. Process each song sequentially through the search, match,
//     duplicate-check, add pipeline with bounded retries and
//     exponential backoff.
//
// The returned [Ledger] holds one [Outcome] per song in input order;
// per-song failures never abort the run.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages,
// and optional data for advanced UI rendering. Updates use select with
// default to prevent blocking.
package tasks
