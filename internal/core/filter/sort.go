package filter

import (
	"listing-service/internal/core/domain"
	"sort"
)

type SortOrder string

const (
	SortDefault   SortOrder = ""
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortNewest    SortOrder = "newest"
)

// ParseSortOrder - неизвестное значение дает порядок по умолчанию
func ParseSortOrder(s string) (SortOrder, bool) {
	switch o := SortOrder(s); o {
	case SortDefault, SortPriceAsc, SortPriceDesc, SortNewest:
		return o, true
	}
	return SortDefault, false
}

// Sort возвращает отсортированную копию. Сортировка устойчивая,
// при равных ключах сохраняется порядок набора данных.
func Sort(properties []domain.Property, order SortOrder) []domain.Property {
	sorted := make([]domain.Property, len(properties))
	copy(sorted, properties)

	var less func(i, j int) bool
	switch order {
	case SortPriceAsc:
		less = func(i, j int) bool { return sorted[i].Price < sorted[j].Price }
	case SortPriceDesc:
		less = func(i, j int) bool { return sorted[i].Price > sorted[j].Price }
	case SortNewest:
		less = func(i, j int) bool { return sorted[i].YearBuilt > sorted[j].YearBuilt }
	default:
		return sorted
	}
	sort.SliceStable(sorted, less)
	return sorted
}

// Page вырезает страницу. perPage <= 0 - без пагинации.
func Page(properties []domain.Property, page, perPage int) []domain.Property {
	if perPage <= 0 {
		return properties
	}
	if page < 1 {
		page = 1
	}
	// сравнение до умножения: start не переполняется при любом page
	if len(properties) == 0 || page-1 > (len(properties)-1)/perPage {
		return []domain.Property{}
	}
	start := (page - 1) * perPage
	end := len(properties)
	if perPage < end-start {
		end = start + perPage
	}
	return properties[start:end]
}
