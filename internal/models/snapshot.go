package models

import "time"

// Snapshot is the full serializable state of a store.
// Assignments are keyed by canonical YYYY-MM-DD strings.
type Snapshot struct {
	Categories  []Category        `json:"categories" toml:"categories"`
	Assignments map[string]string `json:"assignments" toml:"assignments"`
	ExportedAt  *time.Time        `json:"exportedAt,omitempty" toml:"exported_at,omitempty"`
}

// SnapshotSummary is what gets shown before an import replaces everything.
type SnapshotSummary struct {
	Categories  int
	Assignments int
	ExportedAt  *time.Time
}

func (s Snapshot) Summary() SnapshotSummary {
	return SnapshotSummary{
		Categories:  len(s.Categories),
		Assignments: len(s.Assignments),
		ExportedAt:  s.ExportedAt,
	}
}
