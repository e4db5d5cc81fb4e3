package render

import (
	"context"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

// Larguras das colunas da tabela de itens, em mm
const (
	colItem   = 50.0
	colDate   = 40.0
	colQty    = 30.0
	colRate   = 30.0
	colAmount = 30.0
	colLabel  = colItem + colDate + colQty + colRate
)

type pdfRenderer struct{}

// NewPDFRenderer desenha a fatura em uma página A4 com a tabela de itens
func NewPDFRenderer() Renderer {
	return &pdfRenderer{}
}

func (r *pdfRenderer) ContentType() string { return "application/pdf" }

func (r *pdfRenderer) Extension() string { return "pdf" }

func (r *pdfRenderer) Render(ctx context.Context, invoice *domain.Invoice, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+invoice.Number, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	business := invoice.Business

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(business.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, tr(business.Address), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, tr("Mobile: "+business.Phone), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 10, "Invoice No.: "+invoice.Number, "", 1, "", false, 0, "")
	pdf.CellFormat(0, 10, "Invoice Date: "+invoiceDate(invoice.IssueDate), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 10, "Due Date: "+invoiceDate(invoice.DueDate), "", 1, "", false, 0, "")

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "BILL TO", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, tr(invoice.BillTo.Name), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 8, tr("Mobile: "+invoice.BillTo.Mobile), "", 1, "", false, 0, "")

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 11)
	r.itemsHeader(pdf)

	pdf.SetFont("Arial", "", 11)
	for _, line := range invoice.Lines {
		// Repete o cabeçalho da tabela quando a linha cai em outra página
		if pdf.GetY()+8 > 277 {
			pdf.AddPage()
			pdf.SetFont("Arial", "B", 11)
			r.itemsHeader(pdf)
			pdf.SetFont("Arial", "", 11)
		}
		pdf.CellFormat(colItem, 8, tr(line.Description), "1", 0, "", false, 0, "")
		pdf.CellFormat(colDate, 8, invoiceDate(line.Date), "1", 0, "", false, 0, "")
		pdf.CellFormat(colQty, 8, tr(line.QuantityLabel()), "1", 0, "", false, 0, "")
		pdf.CellFormat(colRate, 8, line.UnitPrice.StringFixed(2), "1", 0, "", false, 0, "")
		pdf.CellFormat(colAmount, 8, line.Amount.StringFixed(2), "1", 1, "", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	r.totalRow(pdf, "SUBTOTAL", tr(domain.FormatMoney(business.Currency, invoice.Subtotal)))
	r.totalRow(pdf, "TOTAL AMOUNT", tr(domain.FormatMoney(business.Currency, invoice.Total)))
	r.totalRow(pdf, "Current Balance", tr(domain.FormatMoney(business.Currency, invoice.Balance)))
	pdf.Ln(10)

	pdf.CellFormat(0, 10, "Total Amount (in words)", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 10, tr(invoice.AmountInWords), "", 1, "", false, 0, "")

	pdf.Ln(15)
	pdf.CellFormat(0, 10, "AUTHORISED SIGNATORY FOR", "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, tr(invoice.Signatory), "", 1, "R", false, 0, "")

	if err := pdf.Error(); err != nil {
		return errors.Wrap(err, "erro ao montar o PDF")
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "erro ao escrever o PDF")
	}
	return nil
}

func (r *pdfRenderer) itemsHeader(pdf *fpdf.Fpdf) {
	pdf.CellFormat(colItem, 8, "ITEMS", "1", 0, "", false, 0, "")
	pdf.CellFormat(colDate, 8, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(colQty, 8, "QTY.", "1", 0, "", false, 0, "")
	pdf.CellFormat(colRate, 8, "RATE", "1", 0, "", false, 0, "")
	pdf.CellFormat(colAmount, 8, "AMOUNT", "1", 1, "", false, 0, "")
}

func (r *pdfRenderer) totalRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.CellFormat(colLabel, 8, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(colAmount, 8, value, "1", 1, "", false, 0, "")
}
