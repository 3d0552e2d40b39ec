package model

import (
	"fmt"
	"strings"
)

func validateLineItems(field string, items []LineItem, errs FieldErrors) {
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", field, i)
		if strings.TrimSpace(item.Name) == "" {
			errs.Add(path+".name", "name is required")
		}
		if item.Quantity <= 0 {
			errs.Add(path+".quantity", "quantity must be greater than zero")
		}
		if item.UnitPrice < 0 {
			errs.Add(path+".unitPrice", "unitPrice must not be negative")
		}
	}
}

func validateCharges(field string, charges []Charge, errs FieldErrors) {
	for i, charge := range charges {
		path := fmt.Sprintf("%s[%d]", field, i)
		if strings.TrimSpace(charge.Description) == "" {
			errs.Add(path+".description", "description is required")
		}
		if charge.Amount < 0 {
			errs.Add(path+".amount", "amount must not be negative")
		}
	}
}

func validateDiscounts(field string, discounts []Discount, errs FieldErrors) {
	for i, discount := range discounts {
		path := fmt.Sprintf("%s[%d]", field, i)
		if !discount.Kind.Valid() {
			errs.Add(path+".type", "type must be percentage or fixed")
		}
		if discount.Amount < 0 {
			errs.Add(path+".amount", "amount must not be negative")
		}
		if discount.Kind == DiscountPercentage && discount.Amount > 100 {
			errs.Add(path+".amount", "percentage discount must not exceed 100")
		}
	}
}

func validateVAT(vat float64, errs FieldErrors) {
	if vat < 0 || vat > 100 {
		errs.Add("vatPercentage", "vatPercentage must be between 0 and 100")
	}
}

// NormalizeUnits fills missing units with the default unit.
func NormalizeUnits(items []LineItem) {
	for i := range items {
		if strings.TrimSpace(items[i].Unit) == "" {
			items[i].Unit = DefaultUnit
		}
	}
}
