package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendPasswordSetupEmail(toEmail, toName, setupURL string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Defina sua senha - Casa de Estudantes"
	html := fmt.Sprintf(`
		<h2>Bem-vindo(a) à Casa de Estudantes!</h2>
		<p>Olá %s,</p>
		<p>Sua reserva foi recebida. Para acompanhar o andamento no painel do cliente, defina sua senha pelo link abaixo:</p>
		<p><a href="%s" style="background-color: #1B7A43; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Definir senha</a></p>
		<p>O link expira em 48 horas.</p>
		<p>Se você não fez uma reserva conosco, ignore este e-mail.</p>
	`, toName, setupURL)

	text := fmt.Sprintf("Olá %s,\n\nDefina sua senha para acessar o painel do cliente: %s\n\nO link expira em 48 horas.", toName, setupURL)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) SendReservationConfirmation(toEmail, toName, accommodationName string, weeks int, totalPriceCents int64) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Recebemos sua reserva - Casa de Estudantes"
	total := fmt.Sprintf("€%.2f", float64(totalPriceCents)/100)
	html := fmt.Sprintf(`
		<h2>Reserva recebida!</h2>
		<p>Olá %s,</p>
		<p>Recebemos sua reserva em <strong>%s</strong> por %d semana(s), no total de <strong>%s</strong>.</p>
		<p>Nossa equipe vai analisar seus documentos e entrar em contato em breve.</p>
	`, toName, accommodationName, weeks, total)

	text := fmt.Sprintf("Olá %s,\n\nRecebemos sua reserva em %s por %d semana(s), total %s.\nNossa equipe vai analisar seus documentos e entrar em contato em breve.", toName, accommodationName, weeks, total)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) SendStaffContactNotice(staffEmail, fromName, fromEmail, subject, body string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	mailSubject := fmt.Sprintf("Novo contato pelo site: %s", subject)
	html := fmt.Sprintf(`
		<h2>Novo contato pelo site</h2>
		<p><strong>Nome:</strong> %s</p>
		<p><strong>E-mail:</strong> %s</p>
		<p><strong>Assunto:</strong> %s</p>
		<p>%s</p>
	`, fromName, fromEmail, subject, body)

	text := fmt.Sprintf("Novo contato pelo site\n\nNome: %s\nE-mail: %s\nAssunto: %s\n\n%s", fromName, fromEmail, subject, body)

	return m.sendEmail(staffEmail, "", mailSubject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}

var _ Service = (*MailerSendClient)(nil)
