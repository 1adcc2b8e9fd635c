package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SamSantos7/irland-casa-estudantes/pkg/logger"
	"github.com/nats-io/nats.go"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
	ID        string
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Event subjects
const (
	ReservationCreated  = "reservation.created"
	ReservationUpdated  = "reservation.updated"
	ReservationCanceled = "reservation.canceled"

	IdentityCreated = "identity.created"

	DocumentSubmitted = "document.submitted"
	DocumentReviewed  = "document.reviewed"

	PaymentIntentCreated = "payment.intent.created"

	ContactReceived = "contact.received"

	NotifySend = "notify.send"
)

// Event payloads
type ReservationCreatedEvent struct {
	ReservationID     int64     `json:"reservation_id"`
	UserID            int64     `json:"user_id"`
	StudentName       string    `json:"student_name"`
	StudentEmail      string    `json:"student_email"`
	AccommodationID   int64     `json:"accommodation_id"`
	AccommodationName string    `json:"accommodation_name"`
	CheckIn           time.Time `json:"check_in"`
	CheckOut          time.Time `json:"check_out"`
	Weeks             int       `json:"weeks"`
	TotalPriceCents   int64     `json:"total_price_cents"`
	CreatedAt         time.Time `json:"created_at"`
}

type ReservationCanceledEvent struct {
	ReservationID int64     `json:"reservation_id"`
	StudentEmail  string    `json:"student_email"`
	Reason        string    `json:"reason"`
	CanceledAt    time.Time `json:"canceled_at"`
}

type IdentityCreatedEvent struct {
	UserID     int64  `json:"user_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	SetupToken string `json:"setup_token"`
}

type DocumentSubmittedEvent struct {
	DocumentID int64  `json:"document_id"`
	UserID     int64  `json:"user_id"`
	Type       string `json:"type"`
	Path       string `json:"path"`
}

type PaymentIntentCreatedEvent struct {
	ReservationID int64  `json:"reservation_id"`
	PaymentID     int64  `json:"payment_id"`
	IntentID      string `json:"intent_id"`
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency"`
}

type ContactReceivedEvent struct {
	MessageID int64  `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

type NotificationEvent struct {
	Type      string                 `json:"type"`
	Recipient string                 `json:"recipient"`
	Subject   string                 `json:"subject"`
	Data      map[string]interface{} `json:"data"`
}
