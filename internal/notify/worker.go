package notify

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/SamSantos7/irland-casa-estudantes/internal/platform/mailer"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/config"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/events"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/logger"
)

// Worker turns domain events into outbound email. One queue group so a
// scaled-out deployment sends each mail once.
type Worker struct {
	bus    events.Subscriber
	mailer mailer.Service
	config *config.Config
}

func NewWorker(bus events.Subscriber, mailer mailer.Service, config *config.Config) *Worker {
	return &Worker{bus: bus, mailer: mailer, config: config}
}

const queueGroup = "notify"

func (w *Worker) Start() error {
	if err := w.bus.QueueSubscribe(events.IdentityCreated, queueGroup, w.handleIdentityCreated); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", events.IdentityCreated, err)
	}
	if err := w.bus.QueueSubscribe(events.ReservationCreated, queueGroup, w.handleReservationCreated); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", events.ReservationCreated, err)
	}
	if err := w.bus.QueueSubscribe(events.ContactReceived, queueGroup, w.handleContactReceived); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", events.ContactReceived, err)
	}
	return nil
}

func (w *Worker) handleIdentityCreated(msg *events.Message) {
	var event events.IdentityCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to decode identity created event", "error", err)
		return
	}

	setupURL := w.dashboardURL() + "?setup_token=" + url.QueryEscape(event.SetupToken)
	if err := w.mailer.SendPasswordSetupEmail(event.Email, event.Name, setupURL); err != nil {
		logger.Error("Failed to send password setup email", "error", err, "user_id", event.UserID)
		return
	}
	logger.Info("Sent password setup email", "user_id", event.UserID)
}

func (w *Worker) handleReservationCreated(msg *events.Message) {
	var event events.ReservationCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to decode reservation created event", "error", err)
		return
	}

	err := w.mailer.SendReservationConfirmation(
		event.StudentEmail, event.StudentName,
		event.AccommodationName, event.Weeks, event.TotalPriceCents,
	)
	if err != nil {
		logger.Error("Failed to send reservation confirmation", "error", err, "reservation_id", event.ReservationID)
		return
	}
	logger.Info("Sent reservation confirmation", "reservation_id", event.ReservationID)
}

func (w *Worker) handleContactReceived(msg *events.Message) {
	var event events.ContactReceivedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to decode contact received event", "error", err)
		return
	}

	err := w.mailer.SendStaffContactNotice(
		w.config.Email.StaffEmail, event.Name, event.Email, event.Subject, event.Body,
	)
	if err != nil {
		logger.Error("Failed to send staff contact notice", "error", err, "message_id", event.MessageID)
		return
	}
	logger.Info("Forwarded contact message to staff", "message_id", event.MessageID)
}

func (w *Worker) dashboardURL() string {
	return strings.TrimRight(w.config.App.SiteURL, "/") + w.config.App.DashboardPath
}
