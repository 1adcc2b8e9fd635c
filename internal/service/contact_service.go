package service

import (
	"context"
	"fmt"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/SamSantos7/irland-casa-estudantes/internal/repo/postgres"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/events"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/logger"
)

type ContactService interface {
	Submit(ctx context.Context, req *domain.ContactReq) (*domain.ContactMessage, error)
	List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, error)
}

type contactService struct {
	repo     postgres.ContactRepository
	eventBus events.EventBus
}

func NewContactService(repo postgres.ContactRepository, eventBus events.EventBus) ContactService {
	return &contactService{repo: repo, eventBus: eventBus}
}

func (s *contactService) Submit(ctx context.Context, req *domain.ContactReq) (*domain.ContactMessage, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	message, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	event := events.ContactReceivedEvent{
		MessageID: message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Subject:   message.Subject,
		Body:      message.Body,
	}
	if err := s.eventBus.Publish(ctx, events.ContactReceived, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish contact received event", "error", err, "message_id", message.ID)
	}

	return message, nil
}

func (s *contactService) List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, error) {
	return s.repo.List(ctx, limit, offset)
}
