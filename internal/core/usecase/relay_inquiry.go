package usecase

import (
	"context"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// RelayInquiryUseCase пересылает заявку во внешний сервис форм.
// Вызывается либо из обработчика запроса, либо из консьюмера очереди.
type RelayInquiryUseCase struct {
	relay port.FormRelayPort
}

func NewRelayInquiryUseCase(relay port.FormRelayPort) *RelayInquiryUseCase {
	return &RelayInquiryUseCase{relay: relay}
}

func (uc *RelayInquiryUseCase) Execute(ctx context.Context, inquiry domain.Inquiry) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "RelayInquiry",
		"inquiry_id": inquiry.ID.String(),
		"kind":       inquiry.Kind,
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.relay.Relay(ctx, inquiry); err != nil {
		ucLogger.Error("Form relay returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
