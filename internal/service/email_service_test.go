package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/removals-office/internal/mailer"
)

func TestSendDocumentRequiresRecipient(t *testing.T) {
	m := &mockMailer{}
	svc := NewEmailService(m, testConfig())

	err := svc.SendDocument(context.Background(), DocumentEmailInput{PDF: []byte("%PDF")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "recipient email is required", verr.Fields["email"])

	err = svc.SendDocument(context.Background(), DocumentEmailInput{To: "nobody", PDF: []byte("%PDF")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "recipient email is not a valid address", verr.Fields["email"])

	err = svc.SendDocument(context.Background(), DocumentEmailInput{To: "a@example.com"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "pdf")

	m.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendDocumentBuildsMessage(t *testing.T) {
	m := &mockMailer{}
	m.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.To == "thandi@example.com" &&
			msg.ToName == "Thandi Mokoena" &&
			msg.Subject == "Quote QT-25-00001 from Swift Removals" &&
			len(msg.Attachments) == 1 &&
			msg.Attachments[0].FileName == "Quote_QT-25-00001.pdf" &&
			msg.Attachments[0].ContentType == ContentTypePDF
	})).Return(nil).Once()

	svc := NewEmailService(m, testConfig())
	err := svc.SendDocument(context.Background(), DocumentEmailInput{
		To:             " thandi@example.com ",
		DocumentNumber: "QT-25-00001",
		DocumentType:   "Quote",
		ClientName:     "Thandi Mokoena",
		PDF:            []byte("%PDF"),
	})
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestSendDocumentWrapsMailerFailure(t *testing.T) {
	m := &mockMailer{}
	m.On("Send", mock.Anything, mock.Anything).Return(mailer.ErrDeliveryFailed).Once()

	svc := NewEmailService(m, testConfig())
	err := svc.SendDocument(context.Background(), DocumentEmailInput{
		To:             "thandi@example.com",
		DocumentNumber: "INV-2501-0001",
		DocumentType:   "Invoice",
		PDF:            []byte("%PDF"),
	})
	assert.True(t, errors.Is(err, mailer.ErrDeliveryFailed))
}
