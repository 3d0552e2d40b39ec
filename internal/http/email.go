package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/removals-office/internal/service"
)

const maxAttachmentBytes = 10 << 20

// sendEmail mails a client-rendered PDF. The body is multipart form data
// with the file under "pdf".
func (h *Handler) sendEmail(c *gin.Context) {
	pdf, fileName, err := readPDF(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	err = h.email.SendDocument(c.Request.Context(), service.DocumentEmailInput{
		To:             c.PostForm("email"),
		DocumentNumber: c.PostForm("documentNumber"),
		DocumentType:   c.PostForm("documentType"),
		ClientName:     c.PostForm("clientName"),
		FileName:       fileName,
		PDF:            pdf,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "email sent"})
}

// readPDF returns the uploaded file, or nothing when no file was sent.
func readPDF(c *gin.Context) ([]byte, string, error) {
	header, err := c.FormFile("pdf")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", errors.New("invalid multipart form")
	}
	if header.Size > maxAttachmentBytes {
		return nil, "", errors.New("pdf file is too large")
	}
	file, err := header.Open()
	if err != nil {
		return nil, "", errors.New("cannot read pdf file")
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxAttachmentBytes))
	if err != nil {
		return nil, "", errors.New("cannot read pdf file")
	}
	return content, header.Filename, nil
}
