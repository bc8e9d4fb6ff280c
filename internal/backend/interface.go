package backend

import (
	"context"

	"budgetwise/internal/data"
)

// CleanupFunc releases whatever a source holds open.
type CleanupFunc func() error

// Pinger is implemented by sources whose health can be probed after load.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BackendResult is a ready snapshot source plus its cleanup.
type BackendResult struct {
	Source  data.SnapshotReader
	Cleanup CleanupFunc
}

// Close runs Cleanup when there is one.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates snapshot sources from configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

type Config struct {
	Type BackendType

	// File source
	DataFile string

	// SQLite source
	SQLiteDBPath string
}

type BackendType string

const (
	EmbeddedBackend BackendType = "embedded"
	FileBackend     BackendType = "file"
	SQLiteBackend   BackendType = "sqlite"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case EmbeddedBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
