package usecase

import (
	"context"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/filter"
	"listing-service/internal/core/port"
)

type GetFilterOptionsUseCase struct {
	catalog port.CatalogPort
}

func NewGetFilterOptionsUseCase(catalog port.CatalogPort) *GetFilterOptionsUseCase {
	return &GetFilterOptionsUseCase{catalog: catalog}
}

// Execute - значения для выпадающих списков локаций, типов и статусов
func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context) (*domain.FilterOptions, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetFilterOptions",
	})

	ucLogger.Info("Use case started", nil)

	options := filter.Options(uc.catalog.Properties())

	ucLogger.Info("Use case finished successfully", port.Fields{
		"locations": len(options.Locations),
		"types":     len(options.Types),
		"statuses":  len(options.Statuses),
	})

	return &options, nil
}
