// Package filter отбирает объекты недвижимости по критериям пользователя.
// Все функции чистые: входной срез не меняется, состояние не хранится.
package filter

import (
	"listing-service/internal/core/domain"
	"strings"
)

// Apply возвращает объекты, прошедшие все заданные фильтры, в исходном порядке.
// Незаданный фильтр ничего не отсекает.
func Apply(properties []domain.Property, criteria domain.FilterCriteria) []domain.Property {
	result := make([]domain.Property, 0, len(properties))

	query := strings.ToLower(criteria.SearchQuery)
	for _, p := range properties {
		if Matches(p, criteria, query) {
			result = append(result, p)
		}
	}
	return result
}

// Matches проверяет один объект. lowerQuery - SearchQuery в нижнем регистре,
// чтобы не пересчитывать его для каждого объекта.
func Matches(p domain.Property, c domain.FilterCriteria, lowerQuery string) bool {
	// Локация сравнивается по вхождению подстроки, а не на равенство
	if c.Location != "" && !strings.Contains(p.Location, c.Location) {
		return false
	}
	if c.PropertyType != "" && p.Type != c.PropertyType {
		return false
	}
	if c.PriceRange != nil && !c.PriceRange.Contains(p.Price) {
		return false
	}
	if c.Status != "" && p.Status != c.Status {
		return false
	}
	if lowerQuery != "" && !matchesQuery(p, lowerQuery) {
		return false
	}
	return true
}

func matchesQuery(p domain.Property, lowerQuery string) bool {
	for _, field := range [...]string{p.Title, p.Description, p.Location, p.Address} {
		if strings.Contains(strings.ToLower(field), lowerQuery) {
			return true
		}
	}
	return false
}

// Options собирает уникальные локации, типы и статусы в порядке первого появления
func Options(properties []domain.Property) domain.FilterOptions {
	return domain.FilterOptions{
		Locations: distinct(properties, func(p domain.Property) string { return p.Location }),
		Types:     distinct(properties, func(p domain.Property) string { return p.Type }),
		Statuses:  distinct(properties, func(p domain.Property) string { return p.Status }),
	}
}

func distinct(properties []domain.Property, key func(domain.Property) string) []string {
	seen := make(map[string]struct{}, len(properties))
	values := make([]string, 0)
	for _, p := range properties {
		v := key(p)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// FindByID - линейный поиск первого объекта с таким id.
// ok == false, если объекта нет.
func FindByID(properties []domain.Property, id int) (domain.Property, bool) {
	for _, p := range properties {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Property{}, false
}

// Featured - объекты для главной страницы
func Featured(properties []domain.Property) []domain.Property {
	result := make([]domain.Property, 0)
	for _, p := range properties {
		if p.Featured {
			result = append(result, p)
		}
	}
	return result
}
