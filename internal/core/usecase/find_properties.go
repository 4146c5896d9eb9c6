package usecase

import (
	"context"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/filter"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type FindPropertiesUseCase struct {
	catalog port.CatalogPort
}

func NewFindPropertiesUseCase(catalog port.CatalogPort) *FindPropertiesUseCase {
	return &FindPropertiesUseCase{catalog: catalog}
}

// Execute фильтрует весь каталог, затем сортирует и режет на страницы.
// Фильтр всегда работает по полному набору, сортировка не влияет на состав выдачи.
func (uc *FindPropertiesUseCase) Execute(ctx context.Context, query usecases_port.FindPropertiesQuery) (*usecases_port.FindPropertiesResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindProperties",
		"criteria": query.Criteria,
		"sort":     query.Sort,
		"page":     query.Page,
		"per_page": query.PerPage,
	})

	ucLogger.Info("Use case started", nil)

	filtered := filter.Apply(uc.catalog.Properties(), query.Criteria)
	sorted := filter.Sort(filtered, query.Sort)

	result := &usecases_port.FindPropertiesResult{
		Properties: filter.Page(sorted, query.Page, query.PerPage),
		Total:      len(sorted),
		Page:       query.Page,
		PerPage:    query.PerPage,
	}
	if query.PerPage <= 0 {
		result.Page = 1
		result.PerPage = len(sorted)
	} else if result.Page < 1 {
		result.Page = 1
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.Total,
		"items_on_page": len(result.Properties),
	})

	return result, nil
}
