package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/removals-office/internal/model"
)

const (
	pageWidth    = 180.0
	bottomLimit  = 260.0
	lineHeight   = 5.0
	rowHeight    = 7.0
	totalsLabelW = 140.0
)

var itemColumns = []column{
	{title: "Description", width: 80, align: "L"},
	{title: "Qty", width: 20, align: "R"},
	{title: "Unit", width: 20, align: "C"},
	{title: "Unit price", width: 30, align: "R"},
	{title: "Total", width: 30, align: "R"},
}

type column struct {
	title string
	width float64
	align string
}

// Generator renders quotes and invoices with the core Helvetica font.
type Generator struct {
	fontName string
	compress bool
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica", compress: true}
}

type document struct {
	pdf     *gofpdf.Fpdf
	font    string
	tr      func(string) string
	company model.Company
}

func (g *Generator) newDocument(company model.Company, title string) *document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetCompression(g.compress)
	pdf.SetTitle(title, true)
	pdf.SetCreator(company.Name, true)
	pdf.AliasNbPages("")

	d := &document{
		pdf:     pdf,
		font:    g.fontName,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		company: company,
	}
	pdf.SetFooterFunc(d.footer)
	pdf.AddPage()
	return d
}

func (d *document) footer() {
	d.pdf.SetY(-15)
	d.pdf.SetFont(d.font, "I", 8)
	d.pdf.SetTextColor(110, 110, 110)
	d.pdf.CellFormat(pageWidth/2, 10, fmt.Sprintf("Page %d of {nb}", d.pdf.PageNo()), "T", 0, "L", false, 0, "")
	d.pdf.CellFormat(pageWidth/2, 10, d.tr(d.company.Name), "T", 0, "R", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
}

func (d *document) header(title, number string) {
	pdf := d.pdf
	top := pdf.GetY()

	pdf.SetFont(d.font, "B", 16)
	pdf.CellFormat(110, 8, d.tr(d.company.Name), "", 1, "L", false, 0, "")
	pdf.SetFont(d.font, "", 9)
	for _, line := range []string{
		d.company.Address,
		labelled("Phone", d.company.Phone),
		labelled("Email", d.company.Email),
		d.company.Website,
	} {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pdf.CellFormat(110, 4.5, d.tr(line), "", 1, "L", false, 0, "")
	}
	bottom := pdf.GetY()

	pdf.SetXY(125, top)
	pdf.SetFont(d.font, "B", 20)
	pdf.CellFormat(70, 10, title, "", 2, "R", false, 0, "")
	pdf.SetFont(d.font, "", 11)
	pdf.CellFormat(70, 6, d.tr(number), "", 1, "R", false, 0, "")

	if pdf.GetY() < bottom {
		pdf.SetY(bottom)
	}
	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), 15+pageWidth, pdf.GetY())
	pdf.Ln(4)
}

// metadata prints label/value pairs in two columns.
func (d *document) metadata(pairs [][2]string) {
	pdf := d.pdf
	for i := 0; i < len(pairs); i += 2 {
		for j := i; j < i+2 && j < len(pairs); j++ {
			pdf.SetFont(d.font, "B", 9)
			pdf.CellFormat(30, lineHeight, pairs[j][0], "", 0, "L", false, 0, "")
			pdf.SetFont(d.font, "", 9)
			pdf.CellFormat(60, lineHeight, d.tr(pairs[j][1]), "", 0, "L", false, 0, "")
		}
		pdf.Ln(lineHeight)
	}
	pdf.Ln(3)
}

func (d *document) billTo(client model.Client) {
	d.sectionTitle("Bill to")
	d.pdf.SetFont(d.font, "", 10)
	for _, line := range []string{
		client.Name,
		client.Company,
		client.Address,
		client.Email,
		client.Phone,
	} {
		if strings.TrimSpace(line) == "" {
			continue
		}
		d.pdf.MultiCell(pageWidth, lineHeight, d.tr(line), "", "L", false)
	}
	d.pdf.Ln(3)
}

func (d *document) move(moveDate *time.Time, pickup, delivery string) {
	if moveDate == nil && pickup == "" && delivery == "" {
		return
	}
	d.sectionTitle("Move details")
	pairs := [][2]string{}
	if moveDate != nil {
		pairs = append(pairs, [2]string{"Move date", formatDate(*moveDate)})
	}
	if pickup != "" {
		pairs = append(pairs, [2]string{"Pickup", pickup})
	}
	if delivery != "" {
		pairs = append(pairs, [2]string{"Delivery", delivery})
	}
	for _, pair := range pairs {
		d.pdf.SetFont(d.font, "B", 9)
		d.pdf.CellFormat(30, lineHeight, pair[0], "", 0, "L", false, 0, "")
		d.pdf.SetFont(d.font, "", 9)
		d.pdf.MultiCell(pageWidth-30, lineHeight, d.tr(pair[1]), "", "L", false)
	}
	d.pdf.Ln(3)
}

func (d *document) itemTable(items []model.LineItem) {
	d.sectionTitle("Items")
	d.tableHeader(itemColumns)
	d.pdf.SetFont(d.font, "", 9)
	if len(items) == 0 {
		d.pdf.CellFormat(pageWidth, rowHeight, "No items", "1", 1, "C", false, 0, "")
	}
	for i, item := range items {
		if d.pdf.GetY()+rowHeight > bottomLimit {
			d.pdf.AddPage()
			d.tableHeader(itemColumns)
			d.pdf.SetFont(d.font, "", 9)
		}
		values := []string{
			d.tr(truncate(item.Name, 48)),
			formatQuantity(item.Quantity),
			d.tr(item.Unit),
			formatMoney(item.UnitPrice),
			formatMoney(item.TotalPrice),
		}
		fill := i%2 == 1
		d.pdf.SetFillColor(245, 245, 245)
		for c, col := range itemColumns {
			d.pdf.CellFormat(col.width, rowHeight, values[c], "1", 0, col.align, fill, 0, "")
		}
		d.pdf.Ln(-1)
	}
	d.pdf.Ln(4)
}

func (d *document) tableHeader(columns []column) {
	d.pdf.SetFont(d.font, "B", 9)
	d.pdf.SetFillColor(225, 230, 240)
	for _, col := range columns {
		d.pdf.CellFormat(col.width, rowHeight, col.title, "1", 0, col.align, true, 0, "")
	}
	d.pdf.Ln(-1)
}

func (d *document) charges(title string, charges []model.Charge) {
	if len(charges) == 0 {
		return
	}
	d.ensureSpace(rowHeight * float64(len(charges)+2))
	d.sectionTitle(title)
	cols := []column{
		{title: "Description", width: 110, align: "L"},
		{title: "Category", width: 40, align: "L"},
		{title: "Amount", width: 30, align: "R"},
	}
	d.tableHeader(cols)
	d.pdf.SetFont(d.font, "", 9)
	for _, charge := range charges {
		d.pdf.CellFormat(cols[0].width, rowHeight, d.tr(truncate(charge.Description, 64)), "1", 0, "L", false, 0, "")
		d.pdf.CellFormat(cols[1].width, rowHeight, d.tr(charge.Category), "1", 0, "L", false, 0, "")
		d.pdf.CellFormat(cols[2].width, rowHeight, formatMoney(charge.Amount), "1", 1, "R", false, 0, "")
	}
	d.pdf.Ln(4)
}

func (d *document) discounts(discounts []model.Discount) {
	if len(discounts) == 0 {
		return
	}
	d.ensureSpace(rowHeight * float64(len(discounts)+2))
	d.sectionTitle("Discounts")
	cols := []column{
		{title: "Description", width: 110, align: "L"},
		{title: "Type", width: 40, align: "L"},
		{title: "Value", width: 30, align: "R"},
	}
	d.tableHeader(cols)
	d.pdf.SetFont(d.font, "", 9)
	for _, discount := range discounts {
		value := formatMoney(discount.Amount)
		if discount.Kind == model.DiscountPercentage {
			value = formatQuantity(discount.Amount) + "%"
		}
		d.pdf.CellFormat(cols[0].width, rowHeight, d.tr(truncate(discount.Description, 64)), "1", 0, "L", false, 0, "")
		d.pdf.CellFormat(cols[1].width, rowHeight, string(discount.Kind), "1", 0, "L", false, 0, "")
		d.pdf.CellFormat(cols[2].width, rowHeight, value, "1", 1, "R", false, 0, "")
	}
	d.pdf.Ln(4)
}

type totalLine struct {
	label string
	value string
	bold  bool
}

func (d *document) totals(lines []totalLine) {
	d.ensureSpace(rowHeight * float64(len(lines)+1))
	for _, line := range lines {
		style := ""
		if line.bold {
			style = "B"
		}
		d.pdf.SetFont(d.font, style, 10)
		d.pdf.CellFormat(totalsLabelW, rowHeight, line.label, "", 0, "R", false, 0, "")
		d.pdf.CellFormat(pageWidth-totalsLabelW, rowHeight, line.value, "", 1, "R", false, 0, "")
	}
	d.pdf.Ln(4)
}

func (d *document) paragraph(title, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	d.ensureSpace(rowHeight * 2)
	d.sectionTitle(title)
	d.pdf.SetFont(d.font, "", 9)
	d.pdf.MultiCell(pageWidth, lineHeight, d.tr(text), "", "L", false)
	d.pdf.Ln(3)
}

func (d *document) sectionTitle(title string) {
	d.pdf.SetFont(d.font, "B", 11)
	d.pdf.CellFormat(pageWidth, 7, title, "", 1, "L", false, 0, "")
}

func (d *document) ensureSpace(height float64) {
	if d.pdf.GetY()+height > bottomLimit {
		d.pdf.AddPage()
	}
}

func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func labelled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDate(*t)
}

func formatQuantity(value float64) string {
	s := fmt.Sprintf("%.2f", value)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// formatMoney renders 1234.5 as "1,234.50".
func formatMoney(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	raw := fmt.Sprintf("%.2f", value)
	whole, frac := raw[:len(raw)-3], raw[len(raw)-2:]

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}
	return sign + grouped.String() + "." + frac
}

func formatPercent(value float64) string {
	return formatQuantity(value) + "%"
}

func titleCase(value string) string {
	value = strings.ReplaceAll(value, "_", " ")
	if value == "" {
		return "-"
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
