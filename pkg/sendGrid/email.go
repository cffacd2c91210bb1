package sendGrid

import (
	"context"
	"errors"
	"fmt"

	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrNotConfigured is returned by Send when no API key was supplied.
var ErrNotConfigured = errors.New("sendgrid is not configured")

type EmailService interface {
	Send(ctx context.Context, req *models.EmailNotificationRequest) error
}

type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
	// BaseURL overrides the v3 mail/send endpoint (regional hosts, tests).
	BaseURL string
}

type emailService struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewEmailService(cfg Config) EmailService {
	if cfg.APIKey == "" {
		return &emailService{from: mail.NewEmail(cfg.FromName, cfg.FromEmail)}
	}

	client := sendgrid.NewSendClient(cfg.APIKey)
	if cfg.BaseURL != "" {
		client.Request.BaseURL = cfg.BaseURL
	}

	return &emailService{client: client, from: mail.NewEmail(cfg.FromName, cfg.FromEmail)}
}

func (e *emailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {

	if e.client == nil {
		return ErrNotConfigured
	}

	response, err := e.client.SendWithContext(ctx, e.buildMessage(req))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

// buildMessage maps a request onto one personalization. Metadata travels as
// custom args so delivery webhooks can be joined back to the order.
func (e *emailService) buildMessage(req *models.EmailNotificationRequest) *mail.SGMailV3 {

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", req.To))
	p.Subject = req.Subject

	for _, cc := range req.CC {
		p.AddCCs(mail.NewEmail("", cc))
	}
	for _, bcc := range req.BCC {
		p.AddBCCs(mail.NewEmail("", bcc))
	}
	for k, v := range req.Metadata {
		p.SetCustomArg(k, v)
	}

	message := mail.NewV3Mail()
	message.SetFrom(e.from)
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/plain", req.Content))

	if req.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", req.HTMLContent))
	}

	return message
}
