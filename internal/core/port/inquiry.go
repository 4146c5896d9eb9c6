package port

import (
	"context"
	"listing-service/internal/core/domain"
)

// InquiryQueuePort - отправка заявки в очередь для асинхронной пересылки
type InquiryQueuePort interface {
	Enqueue(ctx context.Context, inquiry domain.Inquiry) error
}

// FormRelayPort - внешний сервис пересылки форм
type FormRelayPort interface {
	Relay(ctx context.Context, inquiry domain.Inquiry) error
}
