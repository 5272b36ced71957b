// Package repositories implements SQLite persistence for brief history.
//
// [BriefRepository] stores each generated brief as its raw JSON next to the idea that produced it.
// Records are soft deleted via deleted_at and excluded from queries by default.
//
// Sequence numbers give records a short, stable number (brief #12) independent of their UUIDs; the CLI
// accepts either. [NextSequence] atomically increments the counter kept in a dedicated sequence table.
package repositories
