// Package conflict detects people double-booked between ordinary duty and an
// extraordinary operation on the same day.
//
// The scanner walks the ordinary-duty calendar day by day, resolves the group
// on duty, and reports every occupant of an extraordinary roster row that is a
// member of that group. It is read-only and deterministic: running it twice on
// the same inputs yields the same, identically ordered report.
//
// Key rules:
//   - Days missing from the calendar cannot be checked and yield nothing
//   - A group without members yields nothing
//   - At most one record per (day, person, operation)
//   - Missing inputs fail with ErrDataUnavailable instead of an empty report
package conflict
