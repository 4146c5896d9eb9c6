package usecase

import (
	"context"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type GetAgentsUseCase struct {
	catalog port.CatalogPort
}

func NewGetAgentsUseCase(catalog port.CatalogPort) *GetAgentsUseCase {
	return &GetAgentsUseCase{catalog: catalog}
}

func (uc *GetAgentsUseCase) Execute(ctx context.Context) ([]domain.Agent, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	logger.WithFields(port.Fields{"use_case": "GetAgents"}).Debug("Use case started", nil)

	return uc.catalog.Agents(), nil
}

type GetServicesUseCase struct {
	catalog port.CatalogPort
}

func NewGetServicesUseCase(catalog port.CatalogPort) *GetServicesUseCase {
	return &GetServicesUseCase{catalog: catalog}
}

func (uc *GetServicesUseCase) Execute(ctx context.Context) ([]domain.Service, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	logger.WithFields(port.Fields{"use_case": "GetServices"}).Debug("Use case started", nil)

	return uc.catalog.Services(), nil
}
