package excel

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/removals-office/internal/model"
	"github.com/nurpe/removals-office/internal/pricing"
)

const (
	summarySheet = "Summary"
	quotesSheet  = "Quotes"
	invoiceSheet = "Invoices"
	tableRow     = 1
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

type statusTotal struct {
	count int
	total float64
}

// Quotes writes one row per quote plus a per-status summary sheet.
func (g *Generator) Quotes(quotes []model.Quote, clients map[uuid.UUID]model.Client) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", quotesSheet); err != nil {
		return nil, err
	}

	headers := []string{
		"Quote number",
		"Created",
		"Client",
		"Status",
		"Move date",
		"Subtotal",
		"Additional charges",
		"Discount",
		"VAT %",
		"VAT",
		"Grand total",
		"Valid until",
	}
	writeHeader(file, quotesSheet, headers)

	byStatus := map[string]*statusTotal{}
	for i, q := range quotes {
		row := tableRow + 1 + i
		setRow(file, quotesSheet, row, []interface{}{
			q.QuoteNumber,
			formatDate(q.CreatedAt),
			clientName(clients, q.ClientID),
			string(q.Status),
			formatOptionalDate(q.MoveDate),
			q.Subtotal,
			q.TotalAdditionalCharges,
			q.TotalDiscount,
			q.VATPercentage,
			q.VATAmount,
			q.GrandTotal,
			formatOptionalDate(q.ValidUntil),
		})
		accumulate(byStatus, string(q.Status), q.GrandTotal)
	}

	_ = file.SetColWidth(quotesSheet, "A", "A", 16)
	_ = file.SetColWidth(quotesSheet, "B", "B", 12)
	_ = file.SetColWidth(quotesSheet, "C", "C", 32)
	_ = file.SetColWidth(quotesSheet, "D", "L", 14)

	if err := writeSummary(file, "Quotes", len(quotes), byStatus); err != nil {
		return nil, err
	}
	return finish(file)
}

// Invoices writes one row per invoice plus a per-status summary sheet.
func (g *Generator) Invoices(invoices []model.Invoice, clients map[uuid.UUID]model.Client) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return nil, err
	}

	headers := []string{
		"Invoice number",
		"Issue date",
		"Client",
		"Status",
		"Payment status",
		"Subtotal",
		"Additional charges",
		"VAT %",
		"VAT",
		"Grand total",
		"Amount paid",
		"Balance due",
		"Due date",
		"Delivered",
	}
	writeHeader(file, invoiceSheet, headers)

	byStatus := map[string]*statusTotal{}
	for i, inv := range invoices {
		row := tableRow + 1 + i
		delivered := "no"
		if inv.DeliveryConfirmed {
			delivered = "yes"
		}
		setRow(file, invoiceSheet, row, []interface{}{
			inv.InvoiceNumber,
			formatDate(inv.IssueDate),
			clientName(clients, inv.ClientID),
			string(inv.Status),
			string(inv.PaymentStatus),
			inv.Subtotal,
			inv.TotalAdditionalCharges,
			inv.VATPercentage,
			inv.VATAmount,
			inv.GrandTotal,
			inv.AmountPaid,
			inv.GrandTotal - inv.AmountPaid,
			formatOptionalDate(inv.DueDate),
			delivered,
		})
		accumulate(byStatus, string(inv.Status), inv.GrandTotal)
	}

	_ = file.SetColWidth(invoiceSheet, "A", "A", 16)
	_ = file.SetColWidth(invoiceSheet, "B", "B", 12)
	_ = file.SetColWidth(invoiceSheet, "C", "C", 32)
	_ = file.SetColWidth(invoiceSheet, "D", "N", 14)

	if err := writeSummary(file, "Invoices", len(invoices), byStatus); err != nil {
		return nil, err
	}
	return finish(file)
}

func writeSummary(file *excelize.File, label string, count int, byStatus map[string]*statusTotal) error {
	if _, err := file.NewSheet(summarySheet); err != nil {
		return err
	}
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	set("A1", "Report")
	set("B1", label)
	set("A2", "Generated")
	set("B2", formatDate(time.Now()))
	set("A3", "Documents")
	set("B3", count)

	set("A5", "Status")
	set("B5", "Count")
	set("C5", "Grand total")

	statuses := make([]string, 0, len(byStatus))
	for status := range byStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	var total float64
	for i, status := range statuses {
		row := 6 + i
		set(fmt.Sprintf("A%d", row), status)
		set(fmt.Sprintf("B%d", row), byStatus[status].count)
		set(fmt.Sprintf("C%d", row), pricing.Round2(byStatus[status].total))
		total += byStatus[status].total
	}
	row := 6 + len(statuses)
	set(fmt.Sprintf("A%d", row), "Total")
	set(fmt.Sprintf("B%d", row), count)
	set(fmt.Sprintf("C%d", row), pricing.Round2(total))

	_ = file.SetColWidth(summarySheet, "A", "A", 18)
	_ = file.SetColWidth(summarySheet, "B", "C", 16)
	return nil
}

func writeHeader(file *excelize.File, sheet string, headers []string) {
	style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		_ = file.SetCellValue(sheet, cell, header)
		if err == nil {
			_ = file.SetCellStyle(sheet, cell, cell, style)
		}
	}
	_ = file.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func setRow(file *excelize.File, sheet string, row int, values []interface{}) {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = file.SetCellValue(sheet, cell, value)
	}
}

func accumulate(byStatus map[string]*statusTotal, status string, amount float64) {
	entry, ok := byStatus[status]
	if !ok {
		entry = &statusTotal{}
		byStatus[status] = entry
	}
	entry.count++
	entry.total += amount
}

func finish(file *excelize.File) ([]byte, error) {
	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clientName(clients map[uuid.UUID]model.Client, id uuid.UUID) string {
	if client, ok := clients[id]; ok {
		return client.Name
	}
	return "-"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDate(*t)
}
