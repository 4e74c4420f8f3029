// Package limiter enforces the monthly assignment cap.
//
// Every function here is a pure computation over already-loaded rosters. The
// limiter is the only gate that keeps a person's monthly occurrence count
// across capped operations at or below Cap.
//
// Occurrences are slot appearances, not distinct days: a person recorded in
// two slots of the same day (a data error) counts twice.
package limiter
