package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vfg2006/chai-ledger/internal/domain"
)

type tableRenderer struct {
	mode Mode
}

// NewTableRenderer escreve a fatura como texto monoespaçado ou markdown
func NewTableRenderer(mode Mode) Renderer {
	return &tableRenderer{mode: mode}
}

func (r *tableRenderer) ContentType() string {
	if r.mode == Markdown {
		return "text/markdown; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

func (r *tableRenderer) Extension() string {
	if r.mode == Markdown {
		return "md"
	}
	return "txt"
}

func (r *tableRenderer) Render(ctx context.Context, invoice *domain.Invoice, w io.Writer) error {
	var b strings.Builder
	business := invoice.Business

	r.heading(&b, business.Name)
	fmt.Fprintf(&b, "%s\nMobile: %s\n\n", business.Address, business.Phone)

	fmt.Fprintf(&b, "Invoice No.: %s\n", invoice.Number)
	fmt.Fprintf(&b, "Invoice Date: %s\n", invoiceDate(invoice.IssueDate))
	fmt.Fprintf(&b, "Due Date: %s\n\n", invoiceDate(invoice.DueDate))

	r.heading(&b, "BILL TO")
	fmt.Fprintf(&b, "%s\nMobile: %s\n\n", invoice.BillTo.Name, invoice.BillTo.Mobile)

	items := NewTable(r.mode)
	items.Header("ITEMS", "Date", "QTY.", "RATE", "AMOUNT")
	items.Columns(
		ColumnConfig{Number: 3, Align: AlignRight},
		ColumnConfig{Number: 4, Align: AlignRight},
		ColumnConfig{Number: 5, Align: AlignRight},
	)
	for _, line := range invoice.Lines {
		items.Row(
			line.Description,
			invoiceDate(line.Date),
			line.QuantityLabel(),
			line.UnitPrice.StringFixed(2),
			line.Amount.StringFixed(2),
		)
	}
	b.WriteString(items.String())
	b.WriteString("\n\n")

	totals := NewTable(r.mode)
	totals.Columns(ColumnConfig{Number: 2, Align: AlignRight})
	totals.Row("SUBTOTAL", domain.FormatMoney(business.Currency, invoice.Subtotal))
	totals.Row("TOTAL AMOUNT", domain.FormatMoney(business.Currency, invoice.Total))
	totals.Row("Current Balance", domain.FormatMoney(business.Currency, invoice.Balance))
	b.WriteString(totals.String())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Total Amount (in words)\n%s\n\n", invoice.AmountInWords)
	fmt.Fprintf(&b, "AUTHORISED SIGNATORY FOR\n%s\n", invoice.Signatory)

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *tableRenderer) heading(b *strings.Builder, title string) {
	if r.mode == Markdown {
		fmt.Fprintf(b, "## %s\n\n", title)
		return
	}
	fmt.Fprintf(b, "%s\n", title)
}

// DashboardTables monta as tabelas do painel para a linha de comando
func DashboardTables(dashboard domain.Dashboard, mode Mode, currency string) string {
	var b strings.Builder

	totals := NewTable(mode)
	totals.Title("Totals")
	totals.Header("Offices", "Tea", "Coffee", "Revenue")
	totals.Row(
		dashboard.Totals.Offices,
		dashboard.Totals.Tea,
		dashboard.Totals.Coffee,
		domain.FormatMoney(currency, dashboard.Totals.Revenue),
	)
	b.WriteString(totals.String())
	b.WriteString("\n\n")

	monthly := NewTable(mode)
	monthly.Title("Monthly")
	monthly.Header("Month", "Tea", "Coffee")
	for _, point := range dashboard.Monthly {
		monthly.Row(point.Month, point.Tea, point.Coffee)
	}
	b.WriteString(monthly.String())
	b.WriteString("\n\n")

	byOffice := NewTable(mode)
	byOffice.Title("By office")
	byOffice.Header("Office", "Tea", "Coffee")
	for _, point := range dashboard.ByOffice {
		byOffice.Row(point.OfficeName, point.Tea, point.Coffee)
	}
	b.WriteString(byOffice.String())
	b.WriteString("\n")

	return b.String()
}

// ReportTables monta a listagem filtrada e o resumo mês x escritório
func ReportTables(report domain.Report, mode Mode, currency string) string {
	var b strings.Builder

	orders := NewTable(mode)
	orders.Title(fmt.Sprintf("%s (%s - %s)", report.Filter.Office, report.Filter.From, report.Filter.To))
	orders.Header("Date", "Office", "Tea", "Tea price", "Coffee", "Coffee price", "Total")
	for _, order := range report.Orders {
		orders.Row(
			order.Date.String(),
			order.OfficeName,
			order.TeaCount,
			order.TeaPrice.StringFixed(2),
			order.CoffeeCount,
			order.CoffeePrice.StringFixed(2),
			order.TotalAmount.StringFixed(2),
		)
	}
	orders.Footer("", "", "", "", "", "Grand total", domain.FormatMoney(currency, report.GrandTotal))
	b.WriteString(orders.String())
	b.WriteString("\n\n")

	summary := NewTable(mode)
	summary.Title("Monthly summary")
	summary.Header("Month", "Office", "Tea", "Coffee", "Total")
	for _, row := range report.MonthlySummary {
		summary.Row(row.Month, row.OfficeName, row.Tea, row.Coffee, row.Total.StringFixed(2))
	}
	b.WriteString(summary.String())
	b.WriteString("\n")

	return b.String()
}
