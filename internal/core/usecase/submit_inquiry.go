package usecase

import (
	"context"
	"fmt"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/filter"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InquiryRedirects - куда отправить пользователя после отправки формы
type InquiryRedirects struct {
	Contact  string
	Property string
}

func (r InquiryRedirects) For(kind domain.InquiryKind) string {
	if kind == domain.InquiryKindProperty {
		return r.Property
	}
	return r.Contact
}

type SubmitInquiryUseCase struct {
	catalog   port.CatalogPort
	queue     port.InquiryQueuePort
	relay     usecases_port.RelayInquiryUseCase
	redirects InquiryRedirects

	now   func() time.Time
	newID func() uuid.UUID
}

// NewSubmitInquiryUseCase создает use case. Если queue == nil, заявка
// пересылается синхронно прямо в обработчике запроса.
func NewSubmitInquiryUseCase(catalog port.CatalogPort, queue port.InquiryQueuePort,
	relay usecases_port.RelayInquiryUseCase, redirects InquiryRedirects) *SubmitInquiryUseCase {
	return &SubmitInquiryUseCase{
		catalog:   catalog,
		queue:     queue,
		relay:     relay,
		redirects: redirects,
		now:       time.Now,
		newID:     uuid.New,
	}
}

func (uc *SubmitInquiryUseCase) Execute(ctx context.Context, cmd usecases_port.SubmitInquiryCommand) (*domain.InquiryResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":     "SubmitInquiry",
		"inquiry_kind": cmd.Kind,
		"property_id":  cmd.PropertyID,
	})

	ucLogger.Info("Use case started", nil)

	result := &domain.InquiryResult{RedirectTo: uc.redirects.For(cmd.Kind)}

	// несуществующий объект дает ErrPropertyNotFound и при заполненной ловушке
	var property domain.Property
	if cmd.Kind == domain.InquiryKindProperty {
		found, ok := filter.FindByID(uc.catalog.Properties(), cmd.PropertyID)
		if !ok {
			ucLogger.Info("Inquiry for unknown property", nil)
			return nil, fmt.Errorf("%w: id %d", domain.ErrPropertyNotFound, cmd.PropertyID)
		}
		property = found
	}

	// Бот заполнил скрытое поле - делаем вид, что все хорошо, но никуда не отправляем
	if strings.TrimSpace(cmd.Honeypot) != "" {
		ucLogger.Warn("Honeypot field is filled, dropping inquiry", nil)
		result.Dropped = true
		return result, nil
	}

	inquiry := domain.Inquiry{
		ID:         uc.newID(),
		Kind:       cmd.Kind,
		Name:       strings.TrimSpace(cmd.Name),
		Email:      strings.TrimSpace(cmd.Email),
		Phone:      strings.TrimSpace(cmd.Phone),
		Subject:    strings.TrimSpace(cmd.Subject),
		Message:    strings.TrimSpace(cmd.Message),
		PropertyID: cmd.PropertyID,
		CreatedAt:  uc.now().UTC(),
	}

	if cmd.Kind == domain.InquiryKindProperty {
		inquiry.PropertyTitle = property.Title
		if inquiry.Subject == "" {
			inquiry.Subject = "Inquiry: " + property.Title
		}
	}

	result.InquiryID = inquiry.ID
	ucLogger = ucLogger.WithFields(port.Fields{"inquiry_id": inquiry.ID.String()})

	if uc.queue != nil {
		if err := uc.queue.Enqueue(ctx, inquiry); err != nil {
			ucLogger.Error("Failed to enqueue inquiry", err, nil)
			return nil, fmt.Errorf("failed to enqueue inquiry: %w", err)
		}
		result.Queued = true
		ucLogger.Info("Use case finished successfully, inquiry queued", nil)
		return result, nil
	}

	if err := uc.relay.Execute(ctx, inquiry); err != nil {
		ucLogger.Error("Failed to relay inquiry", err, nil)
		return nil, fmt.Errorf("failed to relay inquiry: %w", err)
	}

	ucLogger.Info("Use case finished successfully, inquiry relayed", nil)
	return result, nil
}
