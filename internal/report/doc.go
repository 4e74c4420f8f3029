// Package report computes read-only summaries of month rosters: how often
// each person serves, how each group's members are spread over the month,
// and how full each operation is.
//
// All functions are pure and deterministic; the caller loads rosters and the
// directory.
package report
