// Package mailer delivers outgoing email through SendGrid.
package mailer

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/nurpe/removals-office/internal/config"
)

const (
	defaultBaseURL    = "https://api.sendgrid.com"
	mailSendPath      = "/v3/mail/send"
	categoryDocuments = "documents"
)

var ErrDeliveryFailed = errors.New("email delivery failed")

type Attachment struct {
	FileName    string
	ContentType string
	Content     []byte
}

type Message struct {
	To          string
	ToName      string
	Subject     string
	Body        string
	Attachments []Attachment
}

// SendGridMailer posts messages to the SendGrid v3 API.
type SendGridMailer struct {
	apiKey   string
	baseURL  string
	fromName string
	from     string
	log      zerolog.Logger
}

func NewSendGridMailer(cfg config.MailConfig, log zerolog.Logger) *SendGridMailer {
	return &SendGridMailer{
		apiKey:   cfg.SendGridAPIKey,
		baseURL:  defaultBaseURL,
		fromName: cfg.FromName,
		from:     cfg.FromEmail,
		log:      log,
	}
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	request := sendgrid.GetRequest(m.apiKey, mailSendPath, m.baseURL)
	request.Method = http.MethodPost
	request.Body = mail.GetRequestBody(m.build(msg))

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	if response.StatusCode >= http.StatusBadRequest {
		m.log.Error().
			Int("status", response.StatusCode).
			Str("body", response.Body).
			Str("to", msg.To).
			Msg("sendgrid rejected message")
		return fmt.Errorf("%w: sendgrid status %d", ErrDeliveryFailed, response.StatusCode)
	}

	m.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("status", response.StatusCode).
		Msg("email sent")
	return nil
}

func (m *SendGridMailer) build(msg Message) *mail.SGMailV3 {
	v3 := mail.NewV3Mail()
	v3.SetFrom(mail.NewEmail(m.fromName, m.from))
	v3.Subject = msg.Subject
	v3.AddCategories(categoryDocuments)

	enable := false
	v3.SetTrackingSettings(&mail.TrackingSettings{SubscriptionTracking: &mail.SubscriptionTrackingSetting{Enable: &enable}})

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail(msg.ToName, msg.To))
	v3.AddPersonalizations(personalization)
	v3.AddContent(mail.NewContent("text/plain", msg.Body))

	for _, attachment := range msg.Attachments {
		a := mail.NewAttachment()
		a.SetContent(base64.StdEncoding.EncodeToString(attachment.Content))
		a.SetType(attachment.ContentType)
		a.SetFilename(attachment.FileName)
		a.SetDisposition("attachment")
		v3.AddAttachment(a)
	}
	return v3
}

// LogMailer only logs messages. It is used when no SendGrid key is set.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	names := make([]string, 0, len(msg.Attachments))
	for _, attachment := range msg.Attachments {
		names = append(names, attachment.FileName)
	}
	m.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Strs("attachments", names).
		Msg("email delivery disabled, message logged")
	return nil
}
