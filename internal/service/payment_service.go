package service

import (
	"context"
	"fmt"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/SamSantos7/irland-casa-estudantes/internal/platform/payments"
	"github.com/SamSantos7/irland-casa-estudantes/internal/repo/postgres"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/events"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/logger"
)

type PaymentService interface {
	// CreateIntentForReservation opens a Stripe PaymentIntent covering the
	// reservation total and records it as a pending payment.
	CreateIntentForReservation(ctx context.Context, reservationID int64) (*domain.Payment, string, error)
	Get(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context, filter domain.PaymentFilter, limit, offset int) ([]domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error)
}

type paymentService struct {
	paymentRepo     postgres.PaymentRepository
	reservationRepo postgres.ReservationRepository
	userRepo        postgres.UserRepository
	stripe          payments.IntentCreator
	eventBus        events.EventBus
}

func NewPaymentService(
	paymentRepo postgres.PaymentRepository,
	reservationRepo postgres.ReservationRepository,
	userRepo postgres.UserRepository,
	stripe payments.IntentCreator,
	eventBus events.EventBus,
) PaymentService {
	return &paymentService{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		stripe:          stripe,
		eventBus:        eventBus,
	}
}

func (s *paymentService) CreateIntentForReservation(ctx context.Context, reservationID int64) (*domain.Payment, string, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, "", fmt.Errorf("reservation not found")
	}
	if reservation.Status == domain.ReservationCanceled {
		return nil, "", fmt.Errorf("cannot collect payment for a canceled reservation")
	}

	user, err := s.userRepo.FindByID(ctx, reservation.UserID)
	if err != nil || user == nil {
		return nil, "", fmt.Errorf("failed to get reservation owner: %w", err)
	}

	intent, err := s.stripe.CreateIntent(reservation.TotalPriceCents, "eur", reservation.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	payment, err := s.paymentRepo.Create(ctx, &domain.Payment{
		ReservationID:  reservation.ID,
		StripeIntentID: intent.ID,
		AmountCents:    intent.AmountCents,
		Currency:       intent.Currency,
		Status:         domain.PaymentPending,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to record payment: %w", err)
	}

	event := events.PaymentIntentCreatedEvent{
		ReservationID: reservation.ID,
		PaymentID:     payment.ID,
		IntentID:      intent.ID,
		AmountCents:   intent.AmountCents,
		Currency:      intent.Currency,
	}
	if err := s.eventBus.Publish(ctx, events.PaymentIntentCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish payment intent created event", "error", err, "payment_id", payment.ID)
	}

	return payment, intent.ClientSecret, nil
}

func (s *paymentService) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) List(ctx context.Context, filter domain.PaymentFilter, limit, offset int) ([]domain.Payment, error) {
	return s.paymentRepo.List(ctx, filter, limit, offset)
}

func (s *paymentService) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error) {
	return s.paymentRepo.UpdateStatus(ctx, id, status)
}
