package invoicing

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/vfg2006/chai-ledger/infrastructure/events"
	"github.com/vfg2006/chai-ledger/internal/domain"
	"github.com/vfg2006/chai-ledger/internal/render"
	"github.com/vfg2006/chai-ledger/internal/usecases/aggregating"
	"github.com/vfg2006/chai-ledger/pkg/log"
)

// Ledger é o que a fatura precisa do livro-caixa
type Ledger interface {
	Orders() []domain.Order
	FindOffice(name string) (domain.Office, bool)
	NextInvoiceNumber(ctx context.Context) (int, error)
}

type Invoicer interface {
	Generate(ctx context.Context, filter domain.ReportFilter) (*domain.Invoice, error)
	Export(ctx context.Context, filter domain.ReportFilter, format render.Format, w io.Writer) (*domain.Invoice, render.Renderer, error)
}

type Service struct {
	ledger    Ledger
	business  domain.BusinessProfile
	publisher events.Publisher
	today     func() domain.Date
}

func NewService(ledger Ledger, business domain.BusinessProfile, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}

	return &Service{
		ledger:    ledger,
		business:  business,
		publisher: publisher,
		today:     domain.Today,
	}
}

// Generate filtra os pedidos, resolve o escritório e reserva o próximo número.
// Escritório inexistente não é erro: o BILL TO sai em branco e a fatura leva um aviso.
func (s *Service) Generate(ctx context.Context, filter domain.ReportFilter) (*domain.Invoice, error) {
	logger := log.ForContext(ctx).WithField("office", filter.Office)

	var (
		office   *domain.Office
		warnings []string
	)
	if !filter.AllOfficesSelected() {
		found, ok := s.ledger.FindOffice(filter.Office)
		if ok {
			office = &found
		} else {
			logger.Warn("invoicing: escritório não cadastrado, fatura sem destinatário")
			warnings = append(warnings, fmt.Sprintf("%s: %s", domain.ErrOfficeNotFound, filter.Office))
		}
	}

	orders := aggregating.Filter(s.ledger.Orders(), filter)

	sequence, err := s.ledger.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice := Compose(ComposeInput{
		Business:  s.business,
		Sequence:  sequence,
		IssueDate: s.today(),
		Office:    office,
		Orders:    orders,
	})
	invoice.Warnings = warnings

	logger.WithFields(log.Fields{
		"invoice_number": invoice.Number,
		"lines":          len(invoice.Lines),
	}).Info("invoicing: fatura gerada")

	if err := s.publisher.Publish(ctx, domain.NewEvent(domain.EventInvoiceIssued, map[string]any{
		"number": invoice.Number,
		"office": invoice.BillTo.Name,
		"total":  invoice.Total,
	})); err != nil {
		logger.WithError(err).Warn("invoicing: evento de fatura não publicado")
	}

	return invoice, nil
}

// Export valida o formato antes de reservar o número, gera e desenha a fatura
func (s *Service) Export(ctx context.Context, filter domain.ReportFilter, format render.Format, w io.Writer) (*domain.Invoice, render.Renderer, error) {
	renderer, err := render.New(format)
	if err != nil {
		return nil, nil, err
	}

	invoice, err := s.Generate(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if err := renderer.Render(ctx, invoice, w); err != nil {
		return nil, nil, errors.Wrapf(err, "erro ao desenhar a fatura %s", invoice.Number)
	}

	return invoice, renderer, nil
}
