package mailer

import (
	"github.com/SamSantos7/irland-casa-estudantes/pkg/logger"
)

// DevMailer logs outbound mail instead of sending it.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendPasswordSetupEmail(toEmail, toName, setupURL string) error {
	logger.Info("[DEV MAIL] Password setup email",
		"to", toEmail,
		"name", toName,
		"setup_url", setupURL,
	)
	return nil
}

func (d *DevMailer) SendReservationConfirmation(toEmail, toName, accommodationName string, weeks int, totalPriceCents int64) error {
	logger.Info("[DEV MAIL] Reservation confirmation email",
		"to", toEmail,
		"name", toName,
		"accommodation", accommodationName,
		"weeks", weeks,
		"total_price_cents", totalPriceCents,
	)
	return nil
}

func (d *DevMailer) SendStaffContactNotice(staffEmail, fromName, fromEmail, subject, body string) error {
	logger.Info("[DEV MAIL] Staff contact notice",
		"to", staffEmail,
		"from_name", fromName,
		"from_email", fromEmail,
		"subject", subject,
	)
	return nil
}

var _ Service = (*DevMailer)(nil)
