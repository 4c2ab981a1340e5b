package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// newSendgridMessage builds a v3 message with the plaintext part first and the
// template name as its category.
func newSendgridMessage(data EmailData, htmlContent, textContent string) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(data.FromName, data.From))
	m.Subject = data.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", data.To))
	m.AddPersonalizations(p)

	m.AddContent(
		mail.NewContent("text/plain", textContent),
		mail.NewContent("text/html", htmlContent),
	)
	if data.ReplyTo != "" {
		m.SetReplyTo(mail.NewEmail("", data.ReplyTo))
	}
	if data.TemplateName != "" {
		m.AddCategories(data.TemplateName)
	}
	return m
}

func (s *Service) sendWithSendgrid(ctx context.Context, data EmailData, htmlContent, textContent string) error {
	response, err := s.sendgridClient.SendWithContext(ctx, newSendgridMessage(data, htmlContent, textContent))
	if err != nil {
		return fmt.Errorf("failed to send email via Sendgrid: %w", err)
	}

	if response.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected Sendgrid status code: %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}
