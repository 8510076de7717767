// Package models defines domain entities and persistence interfaces for transfer run history.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs carrying run results
//   - [RunReport] : Totals and timing for a finished transfer run
//   - [RunOutcome] : What happened to a single input title
//
// 2. Persistent Entities: Database-backed models
//   - [Run] : A recorded transfer run with its per-song outcomes
//
// Persistent entities implement the Model interface providing ID access and validation.
// The Repository[T] interface defines the data access operations repositories implement.
package models
