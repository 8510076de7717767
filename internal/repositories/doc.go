// Package repositories implements SQLite persistence for transfer run history.
//
// Runs are append-only: a finished run is inserted once, together with its per-song
// outcomes, inside a single transaction. Listing returns run summaries ordered by
// start time; outcomes are loaded when a single run is fetched by ID.
//
// Key Implementations:
//   - [RunRepository] : Run history with per-song outcome rows
package repositories
