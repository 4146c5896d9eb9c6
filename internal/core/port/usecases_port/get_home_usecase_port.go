package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type HomeView struct {
	Featured []domain.Property
	Services []domain.Service
}

type GetHomeUseCase interface {
	Execute(ctx context.Context) (*HomeView, error)
}
