package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type SubmitInquiryCommand struct {
	Kind       domain.InquiryKind
	Name       string
	Email      string
	Phone      string
	Subject    string
	Message    string
	PropertyID int
	// Honeypot - скрытое поле формы, люди его не заполняют
	Honeypot string
}

type SubmitInquiryUseCase interface {
	Execute(ctx context.Context, cmd SubmitInquiryCommand) (*domain.InquiryResult, error)
}

type RelayInquiryUseCase interface {
	Execute(ctx context.Context, inquiry domain.Inquiry) error
}
