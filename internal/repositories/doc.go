// Package repositories implements SQLite persistence for stored sessions.
//
// A [SessionRepository] keeps the access credential of each named profile so that a consent
// performed once in the browser can be resumed by later CLI invocations. Rows are soft deleted
// via deleted_at and excluded from queries by default.
//
// Sequence numbers provide stable, human-readable ordering independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
