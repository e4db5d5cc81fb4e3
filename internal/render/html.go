package render

import (
	"context"
	"html/template"
	"io"

	"github.com/pkg/errors"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

const invoiceTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Invoice {{.Number}}</title>
<style>
body { font-family: Arial, Helvetica, sans-serif; font-size: 11pt; margin: 24px; }
header { text-align: center; }
table { border-collapse: collapse; width: 100%; margin-top: 12px; }
th, td { border: 1px solid #000; padding: 4px 6px; text-align: left; }
td.num { text-align: right; }
.signature { text-align: right; margin-top: 48px; }
</style>
</head>
<body>
<header>
<h1>{{.Business.Name}}</h1>
<p>{{.Business.Address}}</p>
<p>Mobile: {{.Business.Phone}}</p>
</header>
<section>
<p>Invoice No.: {{.Number}}</p>
<p>Invoice Date: {{date .IssueDate}}</p>
<p>Due Date: {{date .DueDate}}</p>
</section>
<section>
<h2>BILL TO</h2>
<p>{{.BillTo.Name}}</p>
<p>Mobile: {{.BillTo.Mobile}}</p>
</section>
<table>
<thead><tr><th>ITEMS</th><th>Date</th><th>QTY.</th><th>RATE</th><th>AMOUNT</th></tr></thead>
<tbody>
{{- range .Lines}}
<tr><td>{{.Description}}</td><td>{{date .Date}}</td><td>{{.QuantityLabel}}</td><td class="num">{{.UnitPrice.StringFixed 2}}</td><td class="num">{{.Amount.StringFixed 2}}</td></tr>
{{- end}}
</tbody>
<tfoot>
<tr><th colspan="4">SUBTOTAL</th><td class="num">{{.SubtotalLabel}}</td></tr>
<tr><th colspan="4">TOTAL AMOUNT</th><td class="num">{{.TotalLabel}}</td></tr>
<tr><th colspan="4">Current Balance</th><td class="num">{{.BalanceLabel}}</td></tr>
</tfoot>
</table>
<h3>Total Amount (in words)</h3>
<p>{{.AmountInWords}}</p>
<div class="signature">
<p>AUTHORISED SIGNATORY FOR</p>
<p>{{.Signatory}}</p>
</div>
</body>
</html>
`

type htmlRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() Renderer {
	return &htmlRenderer{
		tmpl: template.Must(template.New("invoice").Funcs(template.FuncMap{
			"date": invoiceDate,
		}).Parse(invoiceTemplate)),
	}
}

// htmlInvoice leva os totais já formatados com a moeda
type htmlInvoice struct {
	*domain.Invoice
	SubtotalLabel string
	TotalLabel    string
	BalanceLabel  string
}

func (r *htmlRenderer) ContentType() string { return "text/html; charset=utf-8" }

func (r *htmlRenderer) Extension() string { return "html" }

func (r *htmlRenderer) Render(ctx context.Context, invoice *domain.Invoice, w io.Writer) error {
	currency := invoice.Business.Currency
	view := htmlInvoice{
		Invoice:       invoice,
		SubtotalLabel: domain.FormatMoney(currency, invoice.Subtotal),
		TotalLabel:    domain.FormatMoney(currency, invoice.Total),
		BalanceLabel:  domain.FormatMoney(currency, invoice.Balance),
	}

	if err := r.tmpl.Execute(w, view); err != nil {
		return errors.Wrap(err, "erro ao gerar o HTML")
	}
	return nil
}
