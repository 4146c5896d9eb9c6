package usecase

import (
	"context"
	"fmt"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/filter"
	"listing-service/internal/core/port"
)

type GetPropertyDetailsUseCase struct {
	catalog port.CatalogPort
}

func NewGetPropertyDetailsUseCase(catalog port.CatalogPort) *GetPropertyDetailsUseCase {
	return &GetPropertyDetailsUseCase{catalog: catalog}
}

func (uc *GetPropertyDetailsUseCase) Execute(ctx context.Context, propertyID int) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetPropertyDetails",
		"property_id": propertyID,
	})

	ucLogger.Info("Use case started", nil)

	property, ok := filter.FindByID(uc.catalog.Properties(), propertyID)
	if !ok {
		// ожидаемая ситуация, клиент покажет страницу "не найдено"
		ucLogger.Info("Property not found", nil)
		return nil, fmt.Errorf("%w: id %d", domain.ErrPropertyNotFound, propertyID)
	}

	ucLogger.Info("Use case finished successfully", nil)

	return &property, nil
}
