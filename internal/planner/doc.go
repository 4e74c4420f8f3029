// Package planner works out what saving a draft will change.
//
// A SavePlan lists, day by day, how each touched row of the confirmed
// roster is replaced. The engine builds the plan before writing anything so
// a save can be previewed with --dry-run, and reports it after a real save.
package planner
