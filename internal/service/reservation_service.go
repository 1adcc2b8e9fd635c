package service

import (
	"context"
	"fmt"
	"time"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/SamSantos7/irland-casa-estudantes/internal/repo/postgres"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/events"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/logger"
)

// SubmissionResult is what the wizard gets back from a successful submit.
type SubmissionResult struct {
	Reservation *domain.Reservation `json:"reservation"`
	Documents   []domain.Document   `json:"documents"`
	User        *domain.UserInfo    `json:"user"`
	NewIdentity bool                `json:"new_identity"`
}

type ReservationService interface {
	// ValidateStep gates wizard navigation: it checks only the given step.
	ValidateStep(draft *domain.Draft, step int) error
	// Submit drives the whole reservation submission: full draft validation,
	// pricing, profile lookup-or-create by phone, then one transactional
	// write of the reservation and its document rows.
	Submit(ctx context.Context, draft *domain.Draft) (*SubmissionResult, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter, limit, offset int) ([]domain.Reservation, error)
	Update(ctx context.Context, id int64, patch domain.ReservationPatch) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int64) (bool, error)
}

type reservationService struct {
	reservationRepo   postgres.ReservationRepository
	accommodationRepo postgres.AccommodationRepository
	identity          IdentityService
	eventBus          events.EventBus
}

func NewReservationService(
	reservationRepo postgres.ReservationRepository,
	accommodationRepo postgres.AccommodationRepository,
	identity IdentityService,
	eventBus events.EventBus,
) ReservationService {
	return &reservationService{
		reservationRepo:   reservationRepo,
		accommodationRepo: accommodationRepo,
		identity:          identity,
		eventBus:          eventBus,
	}
}

func (s *reservationService) ValidateStep(draft *domain.Draft, step int) error {
	return draft.ValidateStep(step)
}

func (s *reservationService) Submit(ctx context.Context, draft *domain.Draft) (*SubmissionResult, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	accommodation, err := s.accommodationRepo.GetByID(ctx, draft.AccommodationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accommodation: %w", err)
	}
	if accommodation == nil {
		return nil, fmt.Errorf("accommodation %d not found", draft.AccommodationID)
	}
	if !accommodation.Active {
		return nil, fmt.Errorf("accommodation %q is not accepting reservations", accommodation.Name)
	}

	weeks := domain.Weeks(draft.CheckIn, draft.CheckOut)
	totalPrice := domain.TotalPriceCents(accommodation.WeeklyRateCents, weeks)

	user, created, err := s.identity.EnsureForDraft(ctx, draft)
	if err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		UserID:                user.ID,
		AccommodationID:       accommodation.ID,
		CheckIn:               draft.CheckIn,
		CheckOut:              draft.CheckOut,
		Weeks:                 weeks,
		TotalPriceCents:       totalPrice,
		HasDietaryRestriction: draft.HasDietaryRestriction,
		DietaryDetails:        draft.DietaryDetails,
		HasHealthRestriction:  draft.HasHealthRestriction,
		HealthDetails:         draft.HealthDetails,
		EmergencyName:         draft.EmergencyName,
		EmergencyRelation:     draft.EmergencyRelation,
		EmergencyPhone:        draft.EmergencyPhone,
		EmergencyEmail:        draft.EmergencyEmail,
		WantsExtraNight:       draft.WantsExtraNight,
		ExtraNightKind:        draft.ExtraNightKind,
		ExtraNightQty:         draft.ExtraNightQty,
		ExtraNightDates:       draft.ExtraNightDates,
	}

	docs := []*domain.Document{
		domain.NewDocument(user.ID, nil, domain.DocPassport, draft.PassportFileName, draft.PassportPath),
		domain.NewDocument(user.ID, nil, domain.DocEnrollmentLetter, draft.EnrollmentFileName, draft.EnrollmentPath),
	}

	// Uploaded files are not rolled back here: a failed insert leaves them
	// orphaned in storage, and the wizard stays on the last step for retry.
	createdRes, createdDocs, err := s.reservationRepo.CreateSubmission(ctx, reservation, docs)
	if err != nil {
		return nil, err
	}

	event := events.ReservationCreatedEvent{
		ReservationID:     createdRes.ID,
		UserID:            user.ID,
		StudentName:       user.FullName(),
		StudentEmail:      user.Email,
		AccommodationID:   accommodation.ID,
		AccommodationName: accommodation.Name,
		CheckIn:           createdRes.CheckIn,
		CheckOut:          createdRes.CheckOut,
		Weeks:             createdRes.Weeks,
		TotalPriceCents:   createdRes.TotalPriceCents,
		CreatedAt:         createdRes.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.ReservationCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish reservation created event", "error", err, "reservation_id", createdRes.ID)
	}

	for _, doc := range createdDocs {
		docEvent := events.DocumentSubmittedEvent{
			DocumentID: doc.ID,
			UserID:     doc.UserID,
			Type:       string(doc.Type),
			Path:       doc.StoragePath,
		}
		if err := s.eventBus.Publish(ctx, events.DocumentSubmitted, docEvent); err != nil {
			logger.ErrorContext(ctx, "Failed to publish document submitted event", "error", err, "document_id", doc.ID)
		}
	}

	return &SubmissionResult{
		Reservation: createdRes,
		Documents:   createdDocs,
		User:        user.ToUserInfo(),
		NewIdentity: created,
	}, nil
}

func (s *reservationService) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, id)
}

func (s *reservationService) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Reservation, error) {
	return s.reservationRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *reservationService) List(ctx context.Context, filter domain.ReservationFilter, limit, offset int) ([]domain.Reservation, error) {
	return s.reservationRepo.List(ctx, filter, limit, offset)
}

func (s *reservationService) Update(ctx context.Context, id int64, patch domain.ReservationPatch) (*domain.Reservation, error) {
	existing, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("reservation not found")
	}

	if patch.CheckIn != nil && patch.CheckOut != nil && !patch.CheckOut.After(*patch.CheckIn) {
		return nil, fmt.Errorf("check-out must be after check-in")
	}

	return s.reservationRepo.Update(ctx, id, patch)
}

func (s *reservationService) Cancel(ctx context.Context, id int64) (bool, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return false, fmt.Errorf("reservation not found")
	}
	if !reservation.CanCancel() {
		return false, fmt.Errorf("reservation cannot be canceled in status %s", reservation.Status)
	}

	success, err := s.reservationRepo.Cancel(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	if success {
		event := events.ReservationCanceledEvent{
			ReservationID: reservation.ID,
			Reason:        "admin_canceled",
			CanceledAt:    time.Now(),
		}
		if err := s.eventBus.Publish(ctx, events.ReservationCanceled, event); err != nil {
			logger.ErrorContext(ctx, "Failed to publish reservation canceled event", "error", err, "reservation_id", reservation.ID)
		}
	}

	return success, nil
}
