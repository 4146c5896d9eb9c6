package datasetfile

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// datasetDocumentDTO - JSON-документ с данными сайта
type datasetDocumentDTO struct {
	Properties []propertyDTO `json:"properties"`
	Agents     []agentDTO    `json:"agents"`
	Services   []serviceDTO  `json:"services"`
}

type propertyDTO struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Location    string          `json:"location"`
	Address     string          `json:"address"`
	Bedrooms    int             `json:"bedrooms"`
	Bathrooms   int             `json:"bathrooms"`
	Area        float64         `json:"area"`
	YearBuilt   *int            `json:"yearBuilt"`
	Featured    bool            `json:"featured"`
	Status      string          `json:"status"`
	Type        string          `json:"type"`
	Amenities   []string        `json:"amenities"`
	Images      []string        `json:"images"`
	Agent       agentDTO        `json:"agent"`
}

type agentDTO struct {
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Image       string   `json:"image"`
	Title       string   `json:"title"`
	Bio         string   `json:"bio"`
	Specialties []string `json:"specialties"`
}

type serviceDTO struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var nonNumeric = regexp.MustCompile(`[^0-9.-]+`)

// parsePrice принимает число или строку вида "₹ 45,00,000".
// Из строки выбрасывается все, кроме цифр, точки и минуса; неразборчивое значение дает 0.
func parsePrice(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}

	var value float64
	var asString string
	switch {
	case json.Unmarshal(raw, &value) == nil:
	case json.Unmarshal(raw, &asString) == nil:
		cleaned := nonNumeric.ReplaceAllString(strings.TrimSpace(asString), "")
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		value = parsed
	default:
		return 0
	}

	// значение вне диапазона int64 считается неразборчивым
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) || value >= math.MaxInt64 {
		return 0
	}
	return int64(math.Round(value))
}
