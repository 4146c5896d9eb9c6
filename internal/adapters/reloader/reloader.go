package reloader

import (
	"context"
	"fmt"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
	"time"

	"github.com/google/uuid"
)

// DatasetReloader периодически перечитывает набор данных.
// Ошибка перезагрузки только логируется, каталог остается на прежнем снимке.
type DatasetReloader struct {
	useCase  usecases_port.ReloadDatasetUseCase
	interval time.Duration
	logger   port.LoggerPort
}

func NewDatasetReloader(useCase usecases_port.ReloadDatasetUseCase, interval time.Duration, logger port.LoggerPort) (*DatasetReloader, error) {
	if useCase == nil {
		return nil, fmt.Errorf("reloader: use case cannot be nil")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("reloader: interval must be positive, got %s", interval)
	}
	return &DatasetReloader{
		useCase:  useCase,
		interval: interval,
		logger:   logger.WithFields(port.Fields{"component": "DatasetReloader"}),
	}, nil
}

func (r *DatasetReloader) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("Dataset reloader started", port.Fields{"interval": r.interval.String()})

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Dataset reloader stopped", nil)
			return nil
		case <-ticker.C:
			r.reload(ctx)
		}
	}
}

func (r *DatasetReloader) reload(ctx context.Context) {
	traceID := uuid.New().String()
	reloadLogger := r.logger.WithFields(port.Fields{"trace_id": traceID})

	ctx = contextkeys.ContextWithLogger(ctx, reloadLogger)
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	if err := r.useCase.Execute(ctx); err != nil {
		reloadLogger.Error("Dataset reload failed, keeping previous snapshot", err, nil)
	}
}

func (r *DatasetReloader) Close() error {
	return nil
}
