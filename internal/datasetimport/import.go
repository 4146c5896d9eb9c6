package datasetimport

import (
	"context"
	"fmt"
	"listing-service/internal/adapters/datasetfile"
	postgres_adapter "listing-service/internal/adapters/postgres"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/pkg/postgres"
	"time"
)

// Options - параметры одного импорта набора данных в PostgreSQL
type Options struct {
	// Location - путь к JSON-файлу или http(s) URL
	Location    string
	DatabaseURL string
	// DryRun - только загрузить и проверить документ, в базу не писать
	DryRun bool
}

// DatasetSaver пишет набор данных целиком
type DatasetSaver interface {
	Save(ctx context.Context, dataset *domain.Dataset) error
}

// Run загружает документ и полностью заменяет им таблицы каталога
func Run(ctx context.Context, opts Options, logger port.LoggerPort) (*domain.Dataset, error) {
	source, err := datasetfile.NewSource(opts.Location)
	if err != nil {
		return nil, err
	}

	runLogger := logger.WithFields(port.Fields{"source": source.Name(), "dry_run": opts.DryRun})
	ctx = contextkeys.ContextWithLogger(ctx, runLogger)

	dataset, err := source.Load(ctx)
	if err != nil {
		runLogger.Error("Failed to load dataset", err, nil)
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	runLogger.Info("Dataset loaded and validated", port.Fields{"counts": dataset.Counts()})

	if opts.DryRun {
		return dataset, nil
	}

	pool, err := postgres.NewClient(ctx, postgres.Config{
		DatabaseURL:    opts.DatabaseURL,
		MaxConns:       2,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		runLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()

	writer, err := postgres_adapter.NewDatasetWriter(pool)
	if err != nil {
		return nil, err
	}
	if err := save(ctx, writer, dataset, runLogger); err != nil {
		return nil, err
	}
	return dataset, nil
}

func save(ctx context.Context, saver DatasetSaver, dataset *domain.Dataset, logger port.LoggerPort) error {
	if err := saver.Save(ctx, dataset); err != nil {
		logger.Error("Failed to save dataset", err, nil)
		return fmt.Errorf("failed to save dataset: %w", err)
	}
	logger.Info("Dataset imported", port.Fields{"counts": dataset.Counts()})
	return nil
}
