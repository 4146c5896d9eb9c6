package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PriceRange - диапазон цен. Max == nil означает "без верхней границы".
type PriceRange struct {
	Min int64
	Max *int64
}

// Contains проверяет цену по границам включительно
func (r PriceRange) Contains(price int64) bool {
	if price < r.Min {
		return false
	}
	if r.Max != nil && price > *r.Max {
		return false
	}
	return true
}

// ParsePriceRange разбирает значение селекта цены в формате сайта:
// "1000000-3000000" или "10000000" (можно с "+" в конце).
// Нулевая верхняя граница трактуется как отсутствие границы.
func ParsePriceRange(raw string) (*PriceRange, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	raw = strings.TrimSuffix(raw, "+")

	parts := strings.Split(raw, "-")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriceRange, raw)
	}

	lower, err := parseBound(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: min %q: %v", ErrInvalidPriceRange, parts[0], err)
	}
	r := &PriceRange{Min: lower}

	if len(parts) == 2 {
		upper, err := parseBound(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: max %q: %v", ErrInvalidPriceRange, parts[1], err)
		}
		if upper != 0 {
			r.Max = &upper
		}
	}
	return r, nil
}

// пустая граница считается нулем
func parseBound(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// FilterCriteria - выбранные пользователем фильтры. Пустая строка или nil - фильтр не задан.
type FilterCriteria struct {
	Location     string
	PropertyType string
	PriceRange   *PriceRange
	Status       string
	SearchQuery  string
}

func (c FilterCriteria) IsEmpty() bool {
	return c.Location == "" && c.PropertyType == "" && c.PriceRange == nil &&
		c.Status == "" && c.SearchQuery == ""
}

// FilterOptions - уникальные значения для выпадающих списков фильтра
type FilterOptions struct {
	Locations []string
	Types     []string
	Statuses  []string
}

// PriceRangeOption - пункт селекта цены
type PriceRangeOption struct {
	Value string
	Label string
}

// PriceRangeOptions - фиксированный набор диапазонов цены на странице объектов
var PriceRangeOptions = []PriceRangeOption{
	{Value: "1000000-3000000", Label: "1000000 - 3000000"},
	{Value: "3000000-5000000", Label: "3000000 - 5000000"},
	{Value: "5000000-10000000", Label: "5000000 - 10000000"},
	{Value: "10000000", Label: "$10M+"},
}
