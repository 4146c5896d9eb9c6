package rest

import (
	"errors"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/filter"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// максимальный размер страницы, если клиент просит пагинацию
const maxPerPage = 100

type PropertyHandler struct {
	findPropertiesUC     usecases_port.FindPropertiesUseCase
	getPropertyDetailsUC usecases_port.GetPropertyDetailsUseCase
	getFilterOptionsUC   usecases_port.GetFilterOptionsUseCase
}

func NewPropertyHandler(findPropertiesUC usecases_port.FindPropertiesUseCase,
	getPropertyDetailsUC usecases_port.GetPropertyDetailsUseCase,
	getFilterOptionsUC usecases_port.GetFilterOptionsUseCase) *PropertyHandler {
	return &PropertyHandler{
		findPropertiesUC:     findPropertiesUC,
		getPropertyDetailsUC: getPropertyDetailsUC,
		getFilterOptionsUC:   getFilterOptionsUC,
	}
}

// FindProperties обрабатывает GET /api/v1/properties
func (h *PropertyHandler) FindProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	handlerLogger := logger.WithFields(port.Fields{"handler": "FindProperties"})

	criteria := domain.FilterCriteria{
		Location:     parseString(query, "location"),
		PropertyType: parseString(query, "type"),
		Status:       parseString(query, "status"),
		SearchQuery:  parseString(query, "q"),
		PriceRange:   parsePriceCriteria(query, handlerLogger),
	}

	sortOrder, ok := filter.ParseSortOrder(parseString(query, "sort"))
	if !ok {
		handlerLogger.Warn("Unknown sort order, using default", port.Fields{"sort": query.Get("sort")})
	}

	// без perPage отдаем всю выборку, как страница объектов на сайте
	page, perPage := 1, 0
	if query.Has("perPage") {
		page = parsePositiveInt(query, "page", 1)
		perPage = parsePositiveInt(query, "perPage", 20)
		if perPage > maxPerPage {
			perPage = maxPerPage
		}
	}

	handlerLogger.Debug("Processing request to find properties", port.Fields{
		"criteria": criteria,
		"page":     page,
		"per_page": perPage,
	})

	result, err := h.findPropertiesUC.Execute(r.Context(), usecases_port.FindPropertiesQuery{
		Criteria: criteria,
		Sort:     sortOrder,
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		handlerLogger.Error("Use case FindProperties failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, toListResponse(result))
}

// parsePriceCriteria собирает диапазон из priceRange ("min-max" или "min")
// либо из пары priceMin/priceMax. Кривые значения не ограничивают выборку.
func parsePriceCriteria(query url.Values, logger port.LoggerPort) *domain.PriceRange {
	if raw := parseString(query, "priceRange"); raw != "" {
		priceRange, err := domain.ParsePriceRange(raw)
		if err != nil {
			logger.Warn("Ignoring malformed priceRange", port.Fields{"price_range": raw, "error": err.Error()})
			return nil
		}
		return priceRange
	}

	lower, okLower := parseInt(query, "priceMin")
	upper, okUpper := parseInt(query, "priceMax")
	if !okLower || !okUpper {
		logger.Warn("Ignoring malformed price bounds", port.Fields{
			"price_min": query.Get("priceMin"),
			"price_max": query.Get("priceMax"),
		})
		return nil
	}
	if lower == nil && upper == nil {
		return nil
	}

	priceRange := &domain.PriceRange{Max: upper}
	if lower != nil {
		priceRange.Min = *lower
	}
	return priceRange
}

// GetPropertyDetails обрабатывает GET /api/v1/properties/{propertyID}
func (h *PropertyHandler) GetPropertyDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	idStr := chi.URLParam(r, "propertyID")
	handlerLogger := logger.WithFields(port.Fields{"handler": "GetPropertyDetails", "property_id": idStr})

	// нечисловой id ведет себя как несуществующий
	propertyID, err := strconv.Atoi(idStr)
	if err != nil {
		handlerLogger.Debug("Invalid property id", nil)
		WriteJSONError(w, http.StatusNotFound, "Property not found")
		return
	}

	property, err := h.getPropertyDetailsUC.Execute(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		handlerLogger.Error("Use case GetPropertyDetails failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyDetails(*property))
}

// GetFilterOptions обрабатывает GET /api/v1/properties/options
func (h *PropertyHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	options, err := h.getFilterOptionsUC.Execute(r.Context())
	if err != nil {
		logger.Error("Use case GetFilterOptions failed", err, port.Fields{"handler": "GetFilterOptions"})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	priceRanges := make([]PriceRangeOptionResponse, len(domain.PriceRangeOptions))
	for i, o := range domain.PriceRangeOptions {
		priceRanges[i] = PriceRangeOptionResponse{Value: o.Value, Label: o.Label}
	}

	RespondWithJSON(w, http.StatusOK, FilterOptionsResponse{
		Locations:   emptyIfNil(options.Locations),
		Types:       emptyIfNil(options.Types),
		Statuses:    emptyIfNil(options.Statuses),
		PriceRanges: priceRanges,
		SortOrders: []string{
			string(filter.SortPriceAsc),
			string(filter.SortPriceDesc),
			string(filter.SortNewest),
		},
	})
}
