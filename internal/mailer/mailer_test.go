package mailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/removals-office/internal/config"
)

func testMailer(baseURL string) *SendGridMailer {
	m := NewSendGridMailer(config.MailConfig{
		SendGridAPIKey: "key",
		FromEmail:      "office@example.com",
		FromName:       "Removals Office",
	}, zerolog.Nop())
	m.baseURL = baseURL
	return m
}

func TestSendGridMailerSendsAttachment(t *testing.T) {
	var payload struct {
		Subject     string `json:"subject"`
		Attachments []struct {
			Content  string `json:"content"`
			Filename string `json:"filename"`
			Type     string `json:"type"`
		} `json:"attachments"`
		Personalizations []struct {
			To []struct {
				Email string `json:"email"`
			} `json:"to"`
		} `json:"personalizations"`
	}
	var auth, path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	err := testMailer(server.URL).Send(context.Background(), Message{
		To:      "client@example.com",
		Subject: "Quote QT-25-00001",
		Body:    "attached",
		Attachments: []Attachment{{
			FileName:    "Quote_QT-25-00001.pdf",
			ContentType: "application/pdf",
			Content:     []byte("%PDF-1.3"),
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer key", auth)
	assert.Equal(t, mailSendPath, path)
	assert.Equal(t, "Quote QT-25-00001", payload.Subject)
	require.Len(t, payload.Attachments, 1)
	assert.Equal(t, "Quote_QT-25-00001.pdf", payload.Attachments[0].Filename)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF-1.3")), payload.Attachments[0].Content)
	require.Len(t, payload.Personalizations, 1)
	assert.Equal(t, "client@example.com", payload.Personalizations[0].To[0].Email)
}

func TestSendGridMailerReportsRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer server.Close()

	err := testMailer(server.URL).Send(context.Background(), Message{To: "client@example.com", Subject: "x", Body: "y"})
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestLogMailerNeverFails(t *testing.T) {
	err := NewLogMailer(zerolog.Nop()).Send(context.Background(), Message{To: "client@example.com"})
	assert.NoError(t, err)
}
