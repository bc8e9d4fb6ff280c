// Package data declares the ports snapshot sources implement.
package data

import (
	"context"

	"budgetwise/internal/core"
)

// SnapshotReader loads the complete dataset. Implementations are read once
// at startup; the returned snapshot is never modified afterwards.
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context) (core.Snapshot, error)
}
