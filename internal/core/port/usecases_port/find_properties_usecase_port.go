package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/filter"
)

type FindPropertiesQuery struct {
	Criteria domain.FilterCriteria
	Sort     filter.SortOrder
	Page     int
	PerPage  int
}

type FindPropertiesResult struct {
	Properties []domain.Property
	Total      int
	Page       int
	PerPage    int
}

type FindPropertiesUseCase interface {
	Execute(ctx context.Context, query FindPropertiesQuery) (*FindPropertiesResult, error)
}
