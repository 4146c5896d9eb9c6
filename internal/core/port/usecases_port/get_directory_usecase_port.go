package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type GetAgentsUseCase interface {
	Execute(ctx context.Context) ([]domain.Agent, error)
}

type GetServicesUseCase interface {
	Execute(ctx context.Context) ([]domain.Service, error)
}
