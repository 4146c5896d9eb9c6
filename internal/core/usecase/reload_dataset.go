package usecase

import (
	"context"
	"fmt"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
)

// ReloadDatasetUseCase загружает набор данных из источника и атомарно подменяет каталог.
// При ошибке каталог остается прежним.
type ReloadDatasetUseCase struct {
	source port.DatasetSourcePort
	writer port.CatalogWriterPort
}

func NewReloadDatasetUseCase(source port.DatasetSourcePort, writer port.CatalogWriterPort) *ReloadDatasetUseCase {
	return &ReloadDatasetUseCase{source: source, writer: writer}
}

func (uc *ReloadDatasetUseCase) Execute(ctx context.Context) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ReloadDataset",
		"source":   uc.source.Name(),
	})

	ucLogger.Info("Use case started", nil)

	dataset, err := uc.source.Load(ctx)
	if err != nil {
		ucLogger.Error("Failed to load dataset, keeping previous snapshot", err, nil)
		return fmt.Errorf("failed to load dataset from %s: %w", uc.source.Name(), err)
	}

	uc.writer.Replace(dataset)

	ucLogger.Info("Use case finished successfully", port.Fields{"counts": dataset.Counts()})
	return nil
}
