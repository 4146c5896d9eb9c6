package usecase

import (
	"context"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/filter"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

// На главной показываем не больше шести услуг
const HomeServicesLimit = 6

type GetHomeUseCase struct {
	catalog port.CatalogPort
}

func NewGetHomeUseCase(catalog port.CatalogPort) *GetHomeUseCase {
	return &GetHomeUseCase{catalog: catalog}
}

func (uc *GetHomeUseCase) Execute(ctx context.Context) (*usecases_port.HomeView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetHome",
	})

	ucLogger.Info("Use case started", nil)

	services := uc.catalog.Services()
	if len(services) > HomeServicesLimit {
		services = services[:HomeServicesLimit]
	}

	view := &usecases_port.HomeView{
		Featured: filter.Featured(uc.catalog.Properties()),
		Services: services,
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"featured": len(view.Featured),
		"services": len(view.Services),
	})

	return view, nil
}
