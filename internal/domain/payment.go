package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCanceled  PaymentStatus = "canceled"
)

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentSucceeded, PaymentFailed, PaymentCanceled:
		return PaymentStatus(s), true
	default:
		return "", false
	}
}

type Payment struct {
	ID             int64         `json:"id"`
	ReservationID  int64         `json:"reservation_id"`
	StripeIntentID string        `json:"stripe_intent_id"`
	AmountCents    int64         `json:"amount_cents"`
	Currency       string        `json:"currency"`
	Status         PaymentStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type PaymentFilter struct {
	Status        *PaymentStatus
	ReservationID *int64
}
