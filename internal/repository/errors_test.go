package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "invoice number",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "uq_invoices_invoice_number"},
			want: ErrNumberTaken,
		},
		{
			name: "quote number wrapped",
			err:  fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_quotes_quote_number"}),
			want: ErrNumberTaken,
		},
		{
			name: "client name",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "uq_clients_name"},
			want: ErrDuplicate,
		},
		{
			name: "foreign key",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "bookings_client_id_fkey"},
			want: ErrReferenced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.err), tt.want)
		})
	}
}

func TestTranslateErrorPassesThroughOtherErrors(t *testing.T) {
	other := errors.New("connection reset")
	assert.Same(t, other, translateError(other))
	assert.NoError(t, translateError(nil))

	checkViolation := &pgconn.PgError{Code: "23514"}
	assert.Same(t, error(checkViolation), translateError(checkViolation))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `INV-2501-`, escapeLike("INV-2501-"))
	assert.Equal(t, `50\% off\_now`, escapeLike("50% off_now"))
}
