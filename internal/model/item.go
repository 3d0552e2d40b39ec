package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ItemCategory string

const (
	ItemCategoryFurniture ItemCategory = "furniture"
	ItemCategoryAppliance ItemCategory = "appliance"
	ItemCategoryBox       ItemCategory = "box"
	ItemCategoryFragile   ItemCategory = "fragile"
	ItemCategoryEquipment ItemCategory = "equipment"
	ItemCategoryOther     ItemCategory = "other"
)

func (c ItemCategory) Valid() bool {
	switch c {
	case ItemCategoryFurniture, ItemCategoryAppliance, ItemCategoryBox,
		ItemCategoryFragile, ItemCategoryEquipment, ItemCategoryOther:
		return true
	}
	return false
}

const DefaultUnit = "pcs"

// Item is a catalogue entry that quotes and bookings reference.
type Item struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string       `json:"name"`
	Category    ItemCategory `json:"category"`
	Unit        string       `json:"unit"`
	UnitPrice   float64      `json:"unitPrice"`
	VolumeM3    float64      `gorm:"column:volume_m3" json:"volumeM3"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (Item) TableName() string { return "items" }

func (i *Item) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(i.Name) == "" {
		errs.Add("name", "name is required")
	}
	if !i.Category.Valid() {
		errs.Add("category", "category must be one of furniture, appliance, box, fragile, equipment, other")
	}
	if i.UnitPrice < 0 {
		errs.Add("unitPrice", "unitPrice must not be negative")
	}
	if i.VolumeM3 < 0 {
		errs.Add("volumeM3", "volumeM3 must not be negative")
	}
	return errs
}
