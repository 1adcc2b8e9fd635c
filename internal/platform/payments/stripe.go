package payments

import (
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Intent is the slice of a Stripe PaymentIntent the service layer needs.
type Intent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Currency     string
	Status       string
}

// IntentCreator abstracts Stripe so tests can fake intent creation.
type IntentCreator interface {
	CreateIntent(amountCents int64, currency string, reservationID int64, email string) (*Intent, error)
}

type StripeClient struct {
	api     *client.API
	enabled bool
}

func NewStripeClient(secretKey string) *StripeClient {
	s := &StripeClient{enabled: secretKey != ""}
	if s.enabled {
		s.api = &client.API{}
		s.api.Init(secretKey, nil)
	}
	return s
}

func (s *StripeClient) CreateIntent(amountCents int64, currency string, reservationID int64, email string) (*Intent, error) {
	if !s.enabled {
		return nil, fmt.Errorf("stripe not configured")
	}

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(amountCents),
		Currency:     stripe.String(currency),
		ReceiptEmail: stripe.String(email),
	}
	params.AddMetadata("reservation_id", strconv.FormatInt(reservationID, 10))

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}, nil
}

var _ IntentCreator = (*StripeClient)(nil)
