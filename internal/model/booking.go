package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID              uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID        uuid.UUID                     `gorm:"type:uuid" json:"clientId"`
	QuoteID         *uuid.UUID                    `gorm:"type:uuid" json:"quoteId,omitempty"`
	MoveDate        time.Time                     `json:"moveDate"`
	PickupAddress   string                        `json:"pickupAddress"`
	DeliveryAddress string                        `json:"deliveryAddress"`
	Status          BookingStatus                 `json:"status"`
	Items           datatypes.JSONSlice[LineItem] `gorm:"type:jsonb" json:"items"`
	Notes           string                        `json:"notes"`
	CreatedAt       time.Time                     `json:"createdAt"`
	UpdatedAt       time.Time                     `json:"updatedAt"`
}

func (Booking) TableName() string { return "bookings" }

func (b *Booking) Validate() FieldErrors {
	errs := FieldErrors{}
	if b.ClientID == uuid.Nil {
		errs.Add("clientId", "clientId is required")
	}
	if b.MoveDate.IsZero() {
		errs.Add("moveDate", "moveDate is required")
	}
	if strings.TrimSpace(b.PickupAddress) == "" {
		errs.Add("pickupAddress", "pickupAddress is required")
	}
	if strings.TrimSpace(b.DeliveryAddress) == "" {
		errs.Add("deliveryAddress", "deliveryAddress is required")
	}
	if !b.Status.Valid() {
		errs.Add("status", "status is not a valid booking status")
	}
	validateLineItems("items", b.Items, errs)
	return errs
}
