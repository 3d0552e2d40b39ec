package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "draft"
	QuoteStatusSent      QuoteStatus = "sent"
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusExpired   QuoteStatus = "expired"
	QuoteStatusConverted QuoteStatus = "converted"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusPending, QuoteStatusAccepted,
		QuoteStatusRejected, QuoteStatusExpired, QuoteStatusConverted:
		return true
	}
	return false
}

type Quote struct {
	ID                     uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	QuoteNumber            string                        `gorm:"column:quote_number" json:"quoteNumber"`
	ClientID               uuid.UUID                     `gorm:"type:uuid" json:"clientId"`
	Items                  datatypes.JSONSlice[LineItem] `gorm:"type:jsonb" json:"items"`
	AdditionalCharges      datatypes.JSONSlice[Charge]   `gorm:"type:jsonb" json:"additionalCharges"`
	Discounts              datatypes.JSONSlice[Discount] `gorm:"type:jsonb" json:"discounts"`
	Subtotal               float64                       `json:"subtotal"`
	TotalDiscount          float64                       `json:"totalDiscount"`
	TotalAdditionalCharges float64                       `json:"totalAdditionalCharges"`
	VATPercentage          float64                       `gorm:"column:vat_percentage" json:"vatPercentage"`
	VATAmount              float64                       `gorm:"column:vat_amount" json:"vatAmount"`
	GrandTotal             float64                       `json:"grandTotal"`
	Status                 QuoteStatus                   `json:"status"`
	ValidUntil             *time.Time                    `json:"validUntil,omitempty"`
	MoveDate               *time.Time                    `json:"moveDate,omitempty"`
	PickupAddress          string                        `json:"pickupAddress"`
	DeliveryAddress        string                        `json:"deliveryAddress"`
	Notes                  string                        `json:"notes"`
	TermsAndConditions     string                        `json:"termsAndConditions"`
	ConvertedBookingID     *uuid.UUID                    `gorm:"type:uuid" json:"convertedBookingId,omitempty"`
	CreatedAt              time.Time                     `json:"createdAt"`
	UpdatedAt              time.Time                     `json:"updatedAt"`
}

func (Quote) TableName() string { return "quotes" }

func (q *Quote) Validate() FieldErrors {
	errs := FieldErrors{}
	if q.ClientID == uuid.Nil {
		errs.Add("clientId", "clientId is required")
	}
	if !q.Status.Valid() {
		errs.Add("status", "status is not a valid quote status")
	}
	validateLineItems("items", q.Items, errs)
	validateCharges("additionalCharges", q.AdditionalCharges, errs)
	validateDiscounts("discounts", q.Discounts, errs)
	validateVAT(q.VATPercentage, errs)
	return errs
}

// QuoteDocument carries everything needed to render a quote.
type QuoteDocument struct {
	Quote   Quote
	Client  Client
	Company Company
}
