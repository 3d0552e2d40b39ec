package pdf

import (
	"github.com/nurpe/removals-office/internal/model"
)

// Invoice renders an invoice together with its signature and delivery
// confirmation. Totals are printed as stored.
func (g *Generator) Invoice(doc model.InvoiceDocument) ([]byte, error) {
	inv := doc.Invoice
	d := g.newDocument(doc.Company, "Invoice "+inv.InvoiceNumber)

	d.header("INVOICE", inv.InvoiceNumber)
	d.metadata([][2]string{
		{"Invoice no.", inv.InvoiceNumber},
		{"Issue date", formatDate(inv.IssueDate)},
		{"Status", titleCase(string(inv.Status))},
		{"Due date", formatOptionalDate(inv.DueDate)},
		{"Payment", titleCase(string(inv.PaymentStatus))},
	})
	d.billTo(doc.Client)
	moveDate := doc.Booking.MoveDate
	d.move(&moveDate, doc.Booking.PickupAddress, doc.Booking.DeliveryAddress)
	d.itemTable(inv.Items)
	d.charges("Extra charges", inv.ExtraCharges)
	d.totals([]totalLine{
		{label: "Subtotal", value: formatMoney(inv.Subtotal)},
		{label: "Additional charges", value: formatMoney(inv.TotalAdditionalCharges)},
		{label: "VAT (" + formatPercent(inv.VATPercentage) + ")", value: formatMoney(inv.VATAmount)},
		{label: "Grand total", value: formatMoney(inv.GrandTotal), bold: true},
		{label: "Amount paid", value: formatMoney(inv.AmountPaid)},
		{label: "Balance due", value: formatMoney(inv.GrandTotal - inv.AmountPaid), bold: true},
	})
	d.paragraph("Notes", inv.Notes)
	d.paragraph("Terms and conditions", inv.TermsAndConditions)
	d.confirmation(inv)

	if err := d.pdf.Error(); err != nil {
		return nil, err
	}
	return d.bytes()
}

func (d *document) confirmation(inv model.Invoice) {
	d.ensureSpace(rowHeight * 4)
	d.sectionTitle("Delivery confirmation")
	d.pdf.SetFont(d.font, "", 9)

	delivered := "Delivery not yet confirmed"
	if inv.DeliveryConfirmed {
		delivered = "Delivery confirmed on " + formatOptionalDate(inv.DeliveryConfirmedAt)
	}
	d.pdf.CellFormat(pageWidth, lineHeight, delivered, "", 1, "L", false, 0, "")

	if inv.Signature == nil {
		d.pdf.Ln(8)
		d.pdf.CellFormat(pageWidth, lineHeight, "Signature: ______________________________", "", 1, "L", false, 0, "")
		return
	}
	d.pdf.CellFormat(pageWidth, lineHeight,
		d.tr("Signed by "+inv.Signature.SignedBy+" on "+formatDate(inv.Signature.SignedAt)),
		"", 1, "L", false, 0, "")
}
