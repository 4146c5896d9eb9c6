package rest

import (
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port/usecases_port"
	"time"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type AgentResponse struct {
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Image       string   `json:"image"`
	Title       string   `json:"title,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
}

// PropertyCardResponse - карточка объекта в списке.
// cover_image отсутствует, если у объекта нет изображений.
type PropertyCardResponse struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Location     string `json:"location"`
	Address      string `json:"address"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"price_display"`
	Bedrooms     int    `json:"bedrooms"`
	Bathrooms    int    `json:"bathrooms"`
	Area         int    `json:"area"`
	Status       string `json:"status"`
	Type         string `json:"type"`
	Featured     bool   `json:"featured"`
	CoverImage   string `json:"cover_image,omitempty"`
}

type PropertyDetailsResponse struct {
	PropertyCardResponse
	Description string        `json:"description"`
	YearBuilt   int           `json:"year_built"`
	Amenities   []string      `json:"amenities"`
	Images      []string      `json:"images"`
	Agent       AgentResponse `json:"agent"`
}

type PropertyListResponse struct {
	Properties []PropertyCardResponse `json:"properties"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	PerPage    int                    `json:"per_page"`
}

type PriceRangeOptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FilterOptionsResponse struct {
	Locations   []string                   `json:"locations"`
	Types       []string                   `json:"types"`
	Statuses    []string                   `json:"statuses"`
	PriceRanges []PriceRangeOptionResponse `json:"price_ranges"`
	SortOrders  []string                   `json:"sort_orders"`
}

// ServiceResponse: icon_url отсутствует для неизвестного имени иконки
type ServiceResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IconURL     string `json:"icon_url,omitempty"`
}

type HomeResponse struct {
	Featured []PropertyCardResponse `json:"featured"`
	Services []ServiceResponse      `json:"services"`
}

// ContactRequest - форма на странице контактов, поля как у HTML-формы
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
	Honey   string `json:"_honey"`
}

// PropertyInquiryRequest - форма "Request Information" на странице объекта
type PropertyInquiryRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Phone   string `json:"phone" validate:"omitempty,max=40"`
	Message string `json:"message" validate:"required,max=5000"`
	Honey   string `json:"_honey"`
}

type InquiryAcceptedResponse struct {
	Status     string     `json:"status"`
	InquiryID  *uuid.UUID `json:"inquiry_id,omitempty"`
	Queued     bool       `json:"queued"`
	RedirectTo string     `json:"redirect_to,omitempty"`
}

type HealthResponse struct {
	Status   string         `json:"status"`
	Source   string         `json:"source,omitempty"`
	LoadedAt *time.Time     `json:"loaded_at,omitempty"`
	Counts   map[string]int `json:"counts"`
}

func toAgentResponse(a domain.Agent) AgentResponse {
	return AgentResponse{
		Name:        a.Name,
		Phone:       a.Phone,
		Email:       a.Email,
		Image:       a.Image,
		Title:       a.Title,
		Bio:         a.Bio,
		Specialties: a.Specialties,
	}
}

func toPropertyCard(p domain.Property) PropertyCardResponse {
	return PropertyCardResponse{
		ID:           p.ID,
		Title:        p.Title,
		Location:     p.Location,
		Address:      p.Address,
		Price:        p.Price,
		PriceDisplay: domain.FormatPrice(p.Price),
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		Status:       p.Status,
		Type:         p.Type,
		Featured:     p.Featured,
		CoverImage:   p.CoverImage(),
	}
}

func toPropertyCards(properties []domain.Property) []PropertyCardResponse {
	cards := make([]PropertyCardResponse, len(properties))
	for i, p := range properties {
		cards[i] = toPropertyCard(p)
	}
	return cards
}

func toPropertyDetails(p domain.Property) PropertyDetailsResponse {
	return PropertyDetailsResponse{
		PropertyCardResponse: toPropertyCard(p),
		Description:          p.Description,
		YearBuilt:            p.YearBuilt,
		Amenities:            emptyIfNil(p.Amenities),
		Images:               emptyIfNil(p.Images),
		Agent:                toAgentResponse(p.Agent),
	}
}

func toServiceResponses(services []domain.Service) []ServiceResponse {
	out := make([]ServiceResponse, len(services))
	for i, s := range services {
		iconURL, _ := domain.ServiceIcon(s.Icon)
		out[i] = ServiceResponse{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Icon:        s.Icon,
			IconURL:     iconURL,
		}
	}
	return out
}

func toListResponse(res *usecases_port.FindPropertiesResult) PropertyListResponse {
	return PropertyListResponse{
		Properties: toPropertyCards(res.Properties),
		Total:      res.Total,
		Page:       res.Page,
		PerPage:    res.PerPage,
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
