package pdf

import "github.com/nurpe/removals-office/internal/model"

// Quote renders a quote. Totals are printed as stored.
func (g *Generator) Quote(doc model.QuoteDocument) ([]byte, error) {
	q := doc.Quote
	d := g.newDocument(doc.Company, "Quote "+q.QuoteNumber)

	d.header("QUOTE", q.QuoteNumber)
	d.metadata([][2]string{
		{"Quote no.", q.QuoteNumber},
		{"Date", formatDate(q.CreatedAt)},
		{"Status", titleCase(string(q.Status))},
		{"Valid until", formatOptionalDate(q.ValidUntil)},
	})
	d.billTo(doc.Client)
	d.move(q.MoveDate, q.PickupAddress, q.DeliveryAddress)
	d.itemTable(q.Items)
	d.charges("Additional charges", q.AdditionalCharges)
	d.discounts(q.Discounts)
	d.totals([]totalLine{
		{label: "Subtotal", value: formatMoney(q.Subtotal)},
		{label: "Additional charges", value: formatMoney(q.TotalAdditionalCharges)},
		{label: "Discount", value: "-" + formatMoney(q.TotalDiscount)},
		{label: "VAT (" + formatPercent(q.VATPercentage) + ")", value: formatMoney(q.VATAmount)},
		{label: "Grand total", value: formatMoney(q.GrandTotal), bold: true},
	})
	d.paragraph("Notes", q.Notes)
	d.paragraph("Terms and conditions", q.TermsAndConditions)

	if err := d.pdf.Error(); err != nil {
		return nil, err
	}
	return d.bytes()
}
