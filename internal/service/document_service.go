package service

import (
	"context"
	"fmt"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/SamSantos7/irland-casa-estudantes/internal/repo/postgres"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/events"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/logger"
)

type DocumentService interface {
	Get(ctx context.Context, id int64) (*domain.Document, error)
	List(ctx context.Context, filter domain.DocumentFilter, limit, offset int) ([]domain.Document, error)
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Document, error)
	Review(ctx context.Context, id int64, req *domain.DocumentReviewReq) (*domain.Document, error)
}

type documentService struct {
	repo     postgres.DocumentRepository
	eventBus events.EventBus
}

func NewDocumentService(repo postgres.DocumentRepository, eventBus events.EventBus) DocumentService {
	return &documentService{repo: repo, eventBus: eventBus}
}

func (s *documentService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *documentService) List(ctx context.Context, filter domain.DocumentFilter, limit, offset int) ([]domain.Document, error) {
	return s.repo.List(ctx, filter, limit, offset)
}

func (s *documentService) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Document, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *documentService) Review(ctx context.Context, id int64, req *domain.DocumentReviewReq) (*domain.Document, error) {
	if _, ok := domain.ParseDocumentStatus(string(req.Status)); !ok {
		return nil, fmt.Errorf("invalid document status %q", req.Status)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("document not found")
	}

	reviewed, err := s.repo.Review(ctx, id, req.Status, req.ReviewNote)
	if err != nil {
		return nil, fmt.Errorf("failed to review document: %w", err)
	}

	event := map[string]any{
		"document_id": reviewed.ID,
		"user_id":     reviewed.UserID,
		"status":      reviewed.Status,
	}
	if err := s.eventBus.Publish(ctx, events.DocumentReviewed, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish document reviewed event", "error", err, "document_id", reviewed.ID)
	}

	return reviewed, nil
}
