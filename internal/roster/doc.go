// Package roster defines the data model shared by every escala component.
//
// A MonthRoster holds one operation's assignments for one calendar month: a
// mapping from day-of-month to a fixed-width Row of slot occupants. The two
// extraordinary operations (PMF and Escola Segura) differ only in slot width.
//
// Reference data lives alongside the rosters:
//   - Directory: explicit Person -> {rank, group} lookup table
//   - OrdinaryCalendar: which ordinary-duty group works on each day of a month
//   - GroupRoster: group -> member names, derived from the Directory
//
// All types here are plain values. Mutation is always whole-slot replacement.
package roster
