// Package pricing computes the monetary totals of quotes and invoices.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/nurpe/removals-office/internal/model"
)

const DefaultVATPercentage = 15.0

// Draft is the priced content of a document before it is written.
// A nil VATPercentage falls back to DefaultVATPercentage.
type Draft struct {
	Items         []model.LineItem
	Charges       []model.Charge
	Discounts     []model.Discount
	VATPercentage *float64
}

type Totals struct {
	Subtotal               float64
	TotalAdditionalCharges float64
	TotalDiscount          float64
	// VATBase is not rounded.
	VATBase       float64
	VATPercentage float64
	VATAmount     float64
	GrandTotal    float64
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals writes each line's total price back into draft.Items and
// returns the document totals. Intermediate values keep full precision;
// only the reported amounts are rounded to cents.
func ComputeTotals(draft Draft) Totals {
	subtotal := decimal.Zero
	for i := range draft.Items {
		line := decimal.NewFromFloat(draft.Items[i].Quantity).
			Mul(decimal.NewFromFloat(draft.Items[i].UnitPrice))
		draft.Items[i].TotalPrice = line.InexactFloat64()
		subtotal = subtotal.Add(line)
	}

	charges := decimal.Zero
	for _, charge := range draft.Charges {
		charges = charges.Add(decimal.NewFromFloat(charge.Amount))
	}

	discount := decimal.Zero
	for _, d := range draft.Discounts {
		discount = discount.Add(resolveDiscount(d, subtotal))
	}

	vatPercentage := DefaultVATPercentage
	if draft.VATPercentage != nil {
		vatPercentage = *draft.VATPercentage
	}

	vatBase := subtotal.Add(charges).Sub(discount)
	vatAmount := vatBase.Mul(decimal.NewFromFloat(vatPercentage)).Div(hundred)
	grandTotal := vatBase.Add(vatAmount)

	return Totals{
		Subtotal:               round(subtotal),
		TotalAdditionalCharges: round(charges),
		TotalDiscount:          round(discount),
		VATBase:                vatBase.InexactFloat64(),
		VATPercentage:          vatPercentage,
		VATAmount:              round(vatAmount),
		GrandTotal:             round(grandTotal),
	}
}

func resolveDiscount(d model.Discount, subtotal decimal.Decimal) decimal.Decimal {
	amount := decimal.NewFromFloat(d.Amount)
	if d.Kind == model.DiscountPercentage {
		return subtotal.Mul(amount).Div(hundred)
	}
	return amount
}

// Round2 rounds half away from zero to two decimal places.
func Round2(value float64) float64 {
	return round(decimal.NewFromFloat(value))
}

func round(value decimal.Decimal) float64 {
	return value.Round(2).InexactFloat64()
}
