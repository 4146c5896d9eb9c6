package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type GetPropertyDetailsUseCase interface {
	Execute(ctx context.Context, propertyID int) (*domain.Property, error)
}
