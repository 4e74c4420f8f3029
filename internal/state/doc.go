// Package state manages persistence of month rosters and pending drafts.
//
// Confirmed rosters are the saved, shared record for one (operation, month).
// A draft holds edits staged locally on top of a confirmed roster until they
// are saved or discarded. Both are persisted as JSON files under the escala
// data root:
//
//	<root>/schedules/<operation>/<YYYY-MM>.json
//	<root>/drafts/<operation>/<YYYY-MM>.json
//
// Key concepts:
//   - Draft: touched days only, with the checksum of the confirmed file it was started from
//   - Draft.Apply: the merged month a user sees while editing
//   - Draft.Additions: occupants the draft adds relative to the confirmed roster
//   - ScheduleStore: interface for loading and saving both
package state
