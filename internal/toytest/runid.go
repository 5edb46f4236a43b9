package toytest

import (
	"github.com/google/uuid"
)

// RunIDGenerator produces identifiers that tag every log record of one run.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs, so log lines from
// successive runs sort by start time.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedRunID always returns the same run ID. Used for deterministic tests.
type FixedRunID string

// Generate returns the fixed ID.
func (f FixedRunID) Generate() string {
	return string(f)
}
