package port

import (
	"context"
	"listing-service/internal/core/domain"
)

// CatalogPort - доступ на чтение к загруженному набору данных.
// До первой загрузки все методы возвращают пустые срезы.
type CatalogPort interface {
	Properties() []domain.Property
	Agents() []domain.Agent
	Services() []domain.Service
}

// CatalogWriterPort - атомарная замена набора данных целиком
type CatalogWriterPort interface {
	Replace(dataset *domain.Dataset)
}

// DatasetSourcePort загружает набор данных целиком (файл, URL, postgres)
type DatasetSourcePort interface {
	Load(ctx context.Context) (*domain.Dataset, error)
	Name() string
}
