package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/nurpe/removals-office/internal/config"
	"github.com/nurpe/removals-office/internal/mailer"
	"github.com/nurpe/removals-office/internal/model"
)

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type EmailService struct {
	mailer  Mailer
	company model.Company
}

func NewEmailService(m Mailer, cfg *config.Config) *EmailService {
	return &EmailService{mailer: m, company: companyFromConfig(cfg)}
}

// DocumentEmailInput is a rendered quote or invoice to deliver by email.
type DocumentEmailInput struct {
	To             string
	DocumentNumber string
	DocumentType   string
	ClientName     string
	FileName       string
	PDF            []byte
}

func (s *EmailService) SendDocument(ctx context.Context, input DocumentEmailInput) error {
	to := strings.TrimSpace(input.To)
	if to == "" {
		return fieldError("email", "recipient email is required")
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return fieldError("email", "recipient email is not a valid address")
	}
	if len(input.PDF) == 0 {
		return fieldError("pdf", "pdf file is required")
	}

	kind := strings.TrimSpace(input.DocumentType)
	if kind == "" {
		kind = "Document"
	}
	number := strings.TrimSpace(input.DocumentNumber)
	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		fileName = documentFileName(kind, number)
	}

	greeting := "Hello,"
	if name := strings.TrimSpace(input.ClientName); name != "" {
		greeting = fmt.Sprintf("Dear %s,", name)
	}
	body := fmt.Sprintf(
		"%s\n\nPlease find attached %s %s from %s.\n\nKind regards,\n%s",
		greeting,
		strings.ToLower(kind),
		number,
		s.company.Name,
		s.company.Name,
	)

	msg := mailer.Message{
		To:      to,
		ToName:  strings.TrimSpace(input.ClientName),
		Subject: strings.TrimSpace(fmt.Sprintf("%s %s from %s", kind, number, s.company.Name)),
		Body:    body,
		Attachments: []mailer.Attachment{{
			FileName:    fileName,
			ContentType: ContentTypePDF,
			Content:     input.PDF,
		}},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %s %s: %w", strings.ToLower(kind), number, err)
	}
	return nil
}
