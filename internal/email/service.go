// internal/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	texttemplate "text/template"

	"github.com/dangerclosesec/fieldwork"
	"github.com/dangerclosesec/fieldwork/internal/config"
	"github.com/sendgrid/sendgrid-go"
)

var templateFS = fieldwork.EmailFS

// Provider identifies supported email providers
type Provider string

const (
	ProviderNone     Provider = config.EmailNone
	ProviderSMTP     Provider = config.EmailSMTP
	ProviderSendgrid Provider = config.EmailSendgrid

	DefaultTemplatePath = "templates/emails"
)

// EmailData contains all necessary information for sending an email
type EmailData struct {
	To           string
	From         string
	FromName     string
	ReplyTo      string
	Subject      string
	TemplateName string
	TemplateData any
}

// Service handles email operations
type Service struct {
	config         *config.Config
	provider       Provider
	sendgridClient *sendgrid.Client
	Templates      map[string]*Template
}

type Template struct {
	HTML      *template.Template
	Plaintext *texttemplate.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.Config) (*Service, error) {
	s := &Service{
		config:    cfg,
		provider:  Provider(cfg.Email.Provider),
		Templates: make(map[string]*Template),
	}

	switch s.provider {
	case ProviderSendgrid:
		s.sendgridClient = sendgrid.NewSendClient(cfg.Sendgrid.APIKey)
	case ProviderSMTP, ProviderNone:
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", s.provider)
	}

	if err := s.loadTemplates(); err != nil {
		return nil, fmt.Errorf("loading email templates: %w", err)
	}

	return s, nil
}

// loadTemplates loads all email templates from the embedded filesystem
func (s *Service) loadTemplates() error {
	templateGroups, err := templateFS.ReadDir(DefaultTemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read email templates directory: %w", err)
	}

	for _, group := range templateGroups {
		if !group.IsDir() {
			continue
		}

		groupPath := DefaultTemplatePath + "/" + group.Name()

		html, err := template.ParseFS(templateFS, groupPath+"/html.tmpl")
		if err != nil {
			return fmt.Errorf("parsing %s html template: %w", group.Name(), err)
		}
		text, err := texttemplate.ParseFS(templateFS, groupPath+"/plaintext.tmpl")
		if err != nil {
			return fmt.Errorf("parsing %s plaintext template: %w", group.Name(), err)
		}

		s.Templates[group.Name()] = &Template{HTML: html, Plaintext: text}
	}

	if len(s.Templates) == 0 {
		return fmt.Errorf("no email templates found")
	}

	return nil
}

// SendEmail sends an email using the configured provider. With no provider
// configured the message is rendered and logged instead.
func (s *Service) SendEmail(ctx context.Context, data EmailData) error {
	htmlContent, textContent, err := s.Render(data.TemplateName, data.TemplateData)
	if err != nil {
		return fmt.Errorf("rendering email: %w", err)
	}

	if data.FromName == "" {
		data.FromName = s.config.Email.FromName
	}
	if data.ReplyTo == "" {
		data.ReplyTo = s.config.Email.ReplyTo
	}

	switch s.provider {
	case ProviderSendgrid:
		if data.From == "" {
			data.From = s.config.Sendgrid.From
		}
		return s.sendWithSendgrid(ctx, data, htmlContent, textContent)
	case ProviderSMTP:
		if data.From == "" {
			data.From = s.config.SMTP.From
		}
		return s.sendWithSMTP(data, htmlContent, textContent)
	case ProviderNone:
		slog.InfoContext(ctx, "email delivery disabled, dropping message",
			"to", data.To,
			"subject", data.Subject,
			"template", data.TemplateName,
		)
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.provider)
	}
}

// Render renders both the HTML and plaintext bodies of a template
func (s *Service) Render(name string, data any) (string, string, error) {
	tmpl, exists := s.Templates[name]
	if !exists {
		return "", "", fmt.Errorf("template %s not found", name)
	}

	var htmlbuf bytes.Buffer
	if err := tmpl.HTML.Execute(&htmlbuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}

	var textbuf bytes.Buffer
	if err := tmpl.Plaintext.Execute(&textbuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}

	return htmlbuf.String(), textbuf.String(), nil
}
