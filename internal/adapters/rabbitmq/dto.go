package rabbitmq

import (
	"listing-service/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// InquirySubmittedEventDTO - тело события InquirySubmittedEvent/1.0.0
type InquirySubmittedEventDTO struct {
	ID            uuid.UUID `json:"id"`
	Kind          string    `json:"kind"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Subject       string    `json:"subject,omitempty"`
	Message       string    `json:"message,omitempty"`
	PropertyID    int       `json:"property_id,omitempty"`
	PropertyTitle string    `json:"property_title,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toEventDTO(inquiry domain.Inquiry) InquirySubmittedEventDTO {
	return InquirySubmittedEventDTO{
		ID:            inquiry.ID,
		Kind:          string(inquiry.Kind),
		Name:          inquiry.Name,
		Email:         inquiry.Email,
		Phone:         inquiry.Phone,
		Subject:       inquiry.Subject,
		Message:       inquiry.Message,
		PropertyID:    inquiry.PropertyID,
		PropertyTitle: inquiry.PropertyTitle,
		CreatedAt:     inquiry.CreatedAt,
	}
}

func (dto InquirySubmittedEventDTO) toDomain() domain.Inquiry {
	return domain.Inquiry{
		ID:            dto.ID,
		Kind:          domain.InquiryKind(dto.Kind),
		Name:          dto.Name,
		Email:         dto.Email,
		Phone:         dto.Phone,
		Subject:       dto.Subject,
		Message:       dto.Message,
		PropertyID:    dto.PropertyID,
		PropertyTitle: dto.PropertyTitle,
		CreatedAt:     dto.CreatedAt,
	}
}
