package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nurpe/removals-office/internal/model"
)

func vat(v float64) *float64 { return &v }

func TestComputeTotalsWorkedExample(t *testing.T) {
	draft := Draft{
		Items:         []model.LineItem{{Name: "Box", Quantity: 2, UnitPrice: 10}},
		Charges:       []model.Charge{{Description: "Stairs", Amount: 5}},
		Discounts:     []model.Discount{{Kind: model.DiscountPercentage, Amount: 10}},
		VATPercentage: vat(15),
	}

	totals := ComputeTotals(draft)

	assert.Equal(t, 20.0, totals.Subtotal)
	assert.Equal(t, 5.0, totals.TotalAdditionalCharges)
	assert.Equal(t, 2.0, totals.TotalDiscount)
	assert.Equal(t, 23.0, totals.VATBase)
	assert.Equal(t, 3.45, totals.VATAmount)
	assert.Equal(t, 26.45, totals.GrandTotal)
	assert.Equal(t, 20.0, draft.Items[0].TotalPrice)
}

func TestComputeTotalsEmptyDocument(t *testing.T) {
	totals := ComputeTotals(Draft{VATPercentage: vat(15)})

	assert.Equal(t, Totals{VATPercentage: 15}, totals)
}

func TestComputeTotalsDefaultsVAT(t *testing.T) {
	totals := ComputeTotals(Draft{
		Items: []model.LineItem{{Name: "Wardrobe", Quantity: 1, UnitPrice: 100}},
	})

	assert.Equal(t, DefaultVATPercentage, totals.VATPercentage)
	assert.Equal(t, 15.0, totals.VATAmount)
	assert.Equal(t, 115.0, totals.GrandTotal)
}

func TestComputeTotalsZeroVATIsNotDefaulted(t *testing.T) {
	totals := ComputeTotals(Draft{
		Items:         []model.LineItem{{Name: "Crate", Quantity: 3, UnitPrice: 7.5}},
		VATPercentage: vat(0),
	})

	assert.Equal(t, 0.0, totals.VATAmount)
	assert.Equal(t, 22.5, totals.GrandTotal)
}

func TestComputeTotalsSubtotalIsSumOfLines(t *testing.T) {
	items := []model.LineItem{
		{Name: "Chair", Quantity: 4, UnitPrice: 12.35},
		{Name: "Table", Quantity: 1, UnitPrice: 99.99},
		{Name: "Tape", Quantity: 2.5, UnitPrice: 0.1},
	}

	totals := ComputeTotals(Draft{Items: items, VATPercentage: vat(15)})

	assert.Equal(t, 149.64, totals.Subtotal)
	assert.Equal(t, 49.4, items[0].TotalPrice)
	assert.Equal(t, 0.25, items[2].TotalPrice)
}

func TestComputeTotalsPercentageDiscountRoundsOnce(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice float64
		percent   float64
		want      float64
	}{
		{name: "exact", unitPrice: 200, percent: 12.5, want: 25},
		{name: "half cent rounds up", unitPrice: 10.05, percent: 50, want: 5.03},
		{name: "thirds", unitPrice: 100, percent: 33.333, want: 33.33},
		{name: "full", unitPrice: 47.11, percent: 100, want: 47.11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(Draft{
				Items:         []model.LineItem{{Name: "Line", Quantity: 1, UnitPrice: tt.unitPrice}},
				Discounts:     []model.Discount{{Kind: model.DiscountPercentage, Amount: tt.percent}},
				VATPercentage: vat(0),
			})
			assert.Equal(t, tt.want, totals.TotalDiscount)
		})
	}
}

func TestComputeTotalsMixedDiscounts(t *testing.T) {
	totals := ComputeTotals(Draft{
		Items: []model.LineItem{{Name: "Move", Quantity: 1, UnitPrice: 500}},
		Discounts: []model.Discount{
			{Kind: model.DiscountFixed, Amount: 20},
			{Kind: model.DiscountPercentage, Amount: 10},
		},
		VATPercentage: vat(15),
	})

	assert.Equal(t, 70.0, totals.TotalDiscount)
	assert.Equal(t, 430.0, totals.VATBase)
	assert.Equal(t, 64.5, totals.VATAmount)
	assert.Equal(t, 494.5, totals.GrandTotal)
}

func TestComputeTotalsRoundsAtTheEnd(t *testing.T) {
	// Rounding the subtotal first would give a grand total of 11.50.
	totals := ComputeTotals(Draft{
		Items:         []model.LineItem{{Name: "Label", Quantity: 1, UnitPrice: 10.0049}},
		VATPercentage: vat(15),
	})

	assert.Equal(t, 10.0, totals.Subtotal)
	assert.Equal(t, 1.5, totals.VATAmount)
	assert.Equal(t, 11.51, totals.GrandTotal)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.68, Round2(2.675))
	assert.Equal(t, 0.0, Round2(0.001))
}
