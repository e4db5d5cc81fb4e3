// Package render desenha faturas e relatórios em bytes: PDF, texto, markdown ou HTML.
// Nada aqui calcula valores; tudo vem pronto em domain.Invoice e domain.Report.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vfg2006/chai-ledger/internal/domain"
)

type Format string

const (
	FormatPDF      Format = "pdf"
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatChrome   Format = "chrome"
)

var ErrUnsupportedFormat = errors.New("formato não suportado")

// Renderer escreve uma fatura já composta
type Renderer interface {
	Render(ctx context.Context, invoice *domain.Invoice, w io.Writer) error
	ContentType() string
	Extension() string
}

// ParseFormat aceita o formato da query string ou da flag; vazio é PDF
func ParseFormat(value string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(value))); format {
	case "":
		return FormatPDF, nil
	case FormatPDF, FormatText, FormatMarkdown, FormatHTML, FormatChrome:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
	}
}

// New devolve o renderizador de um formato
func New(format Format) (Renderer, error) {
	switch format {
	case FormatPDF:
		return NewPDFRenderer(), nil
	case FormatText:
		return NewTableRenderer(ASCII), nil
	case FormatMarkdown:
		return NewTableRenderer(Markdown), nil
	case FormatHTML:
		return NewHTMLRenderer(), nil
	case FormatChrome:
		return NewChromeRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FileName é o nome do anexo oferecido para download, ex: Invoice-001.pdf
func FileName(invoice *domain.Invoice, r Renderer) string {
	return fmt.Sprintf("Invoice-%s.%s", invoice.Number, r.Extension())
}

func invoiceDate(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(domain.InvoiceDateLayout)
}
