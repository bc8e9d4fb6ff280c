package backend

import (
	"context"
	"fmt"

	"budgetwise/internal/core"
	"budgetwise/internal/data/memory"
	"budgetwise/internal/log"
	"budgetwise/internal/storage"
)

type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case EmbeddedBackend:
		return f.createEmbeddedBackend()
	case FileBackend:
		return f.createFileBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createEmbeddedBackend() (*BackendResult, error) {
	store, err := memory.NewEmbedded()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded dataset: %w", err)
	}
	f.logger.Info("Initialized embedded data source")
	return &BackendResult{Source: store}, nil
}

func (f *DefaultFactory) createFileBackend(config Config) (*BackendResult, error) {
	store, err := memory.NewFromFile(config.DataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load data file: %w", err)
	}
	f.logger.Info("Initialized file data source", log.FieldSource, config.DataFile)
	return &BackendResult{Source: store}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	f.logger.Info("Initialized SQLite data source", log.FieldSource, config.SQLiteDBPath)
	return &BackendResult{
		Source:  repo,
		Cleanup: repo.Close,
	}, nil
}

// LoadSnapshot builds the configured source and reads the dataset once.
// The returned result stays open so readiness checks can ping it.
func LoadSnapshot(ctx context.Context, f Factory, config Config) (core.Snapshot, *BackendResult, error) {
	res, err := f.CreateBackend(ctx, config)
	if err != nil {
		return core.Snapshot{}, nil, err
	}
	snap, err := res.Source.ReadSnapshot(ctx)
	if err != nil {
		_ = res.Close()
		return core.Snapshot{}, nil, fmt.Errorf("read snapshot from %s source: %w", config.Type, err)
	}
	return snap, res, nil
}
