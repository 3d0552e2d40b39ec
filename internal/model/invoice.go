package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusPartiallyPaid || s == PaymentStatusPaid
}

// Signature records who signed for the delivered goods.
type Signature struct {
	SignedBy string    `json:"signedBy"`
	SignedAt time.Time `json:"signedAt"`
	Data     string    `json:"data,omitempty"`
}

type Invoice struct {
	ID                     uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNumber          string                        `gorm:"column:invoice_number" json:"invoiceNumber"`
	BookingID              uuid.UUID                     `gorm:"type:uuid" json:"bookingId"`
	ClientID               uuid.UUID                     `gorm:"type:uuid" json:"clientId"`
	Items                  datatypes.JSONSlice[LineItem] `gorm:"type:jsonb" json:"items"`
	ExtraCharges           datatypes.JSONSlice[Charge]   `gorm:"type:jsonb" json:"extraCharges"`
	Subtotal               float64                       `json:"subtotal"`
	TotalAdditionalCharges float64                       `json:"totalAdditionalCharges"`
	VATPercentage          float64                       `gorm:"column:vat_percentage" json:"vatPercentage"`
	VATAmount              float64                       `gorm:"column:vat_amount" json:"vatAmount"`
	GrandTotal             float64                       `json:"grandTotal"`
	Status                 InvoiceStatus                 `json:"status"`
	PaymentStatus          PaymentStatus                 `json:"paymentStatus"`
	AmountPaid             float64                       `json:"amountPaid"`
	Signature              *Signature                    `gorm:"type:jsonb;serializer:json" json:"signature,omitempty"`
	DeliveryConfirmed      bool                          `json:"deliveryConfirmed"`
	DeliveryConfirmedAt    *time.Time                    `json:"deliveryConfirmedAt,omitempty"`
	IssueDate              time.Time                     `json:"issueDate"`
	DueDate                *time.Time                    `json:"dueDate,omitempty"`
	Notes                  string                        `json:"notes"`
	TermsAndConditions     string                        `json:"termsAndConditions"`
	CreatedAt              time.Time                     `json:"createdAt"`
	UpdatedAt              time.Time                     `json:"updatedAt"`
}

func (Invoice) TableName() string { return "invoices" }

func (inv *Invoice) Validate() FieldErrors {
	errs := FieldErrors{}
	if inv.BookingID == uuid.Nil {
		errs.Add("bookingId", "bookingId is required")
	}
	if inv.ClientID == uuid.Nil {
		errs.Add("clientId", "clientId is required")
	}
	if !inv.Status.Valid() {
		errs.Add("status", "status is not a valid invoice status")
	}
	if !inv.PaymentStatus.Valid() {
		errs.Add("paymentStatus", "paymentStatus is not a valid payment status")
	}
	if inv.AmountPaid < 0 {
		errs.Add("amountPaid", "amountPaid must not be negative")
	}
	validateLineItems("items", inv.Items, errs)
	validateCharges("extraCharges", inv.ExtraCharges, errs)
	validateVAT(inv.VATPercentage, errs)
	return errs
}

// InvoiceDocument carries everything needed to render an invoice.
type InvoiceDocument struct {
	Invoice Invoice
	Client  Client
	Booking Booking
	Company Company
}
