package mailer

type Service interface {
	SendPasswordSetupEmail(toEmail, toName, setupURL string) error
	SendReservationConfirmation(toEmail, toName, accommodationName string, weeks int, totalPriceCents int64) error
	SendStaffContactNotice(staffEmail, fromName, fromEmail, subject, body string) error
}
