package domain

import (
	"time"

	"github.com/google/uuid"
)

type InquiryKind string

const (
	InquiryKindContact  InquiryKind = "contact"
	InquiryKindProperty InquiryKind = "property"
)

// Inquiry - заявка с формы контактов или со страницы объекта.
// Для заявки по объекту Subject формируется из названия объекта.
type Inquiry struct {
	ID      uuid.UUID
	Kind    InquiryKind
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string

	PropertyID    int
	PropertyTitle string

	CreatedAt time.Time
}

// InquiryResult - что отвечаем клиенту после приема заявки
type InquiryResult struct {
	InquiryID  uuid.UUID
	Queued     bool
	Dropped    bool
	RedirectTo string
}
