package render

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

const chromeTimeout = 30 * time.Second

type chromeRenderer struct {
	html     Renderer
	execPath string
}

// NewChromeRenderer imprime a versão HTML da fatura com um Chrome headless.
// Exige um Chrome ou Chromium instalado na máquina.
func NewChromeRenderer() Renderer {
	return &chromeRenderer{html: NewHTMLRenderer()}
}

func (r *chromeRenderer) ContentType() string { return "application/pdf" }

func (r *chromeRenderer) Extension() string { return "pdf" }

func (r *chromeRenderer) Render(ctx context.Context, invoice *domain.Invoice, w io.Writer) error {
	var document bytes.Buffer
	if err := r.html.Render(ctx, invoice, &document); err != nil {
		return err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	ctx, cancel := context.WithTimeout(ctx, chromeTimeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, document.String()).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return errors.Wrap(err, "erro ao imprimir a fatura no chrome")
	}

	_, err = w.Write(pdf)
	return err
}
