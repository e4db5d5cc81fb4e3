package aggregating

import (
	"context"

	"github.com/vfg2006/chai-ledger/internal/domain"
	"github.com/vfg2006/chai-ledger/pkg/log"
)

// Source é a parte do livro-caixa que as agregações leem
type Source interface {
	Offices() []domain.Office
	Orders() []domain.Order
}

type Aggregator interface {
	Dashboard(ctx context.Context) domain.Dashboard
	Report(ctx context.Context, filter domain.ReportFilter) domain.Report
	FilterOrders(ctx context.Context, filter domain.ReportFilter) []domain.Order
}

type Service struct {
	source Source
}

func NewService(source Source) Aggregator {
	return &Service{
		source: source,
	}
}

func (s *Service) Dashboard(ctx context.Context) domain.Dashboard {
	orders := s.source.Orders()

	return domain.Dashboard{
		Totals:   Totals(s.source.Offices(), orders),
		Monthly:  MonthlySeries(orders),
		ByOffice: OfficeSeries(orders),
	}
}

// Report monta a tela de relatório. Sem datas, o intervalo vai da primeira à última entrega.
// Intervalo invertido não é erro, apenas não seleciona nenhuma entrega.
func (s *Service) Report(ctx context.Context, filter domain.ReportFilter) domain.Report {
	orders := s.source.Orders()

	filter = resolveFilter(orders, filter)
	filtered := Filter(orders, filter)

	log.ForContext(ctx).WithFields(log.Fields{
		"office": filter.Office,
		"orders": len(filtered),
	}).Debug("aggregating: relatório calculado")

	return domain.Report{
		Filter:         filter,
		Orders:         filtered,
		GrandTotal:     GrandTotal(filtered),
		MonthlySummary: GroupByMonthOffice(filtered),
	}
}

func (s *Service) FilterOrders(ctx context.Context, filter domain.ReportFilter) []domain.Order {
	return Filter(s.source.Orders(), filter)
}

func resolveFilter(orders []domain.Order, filter domain.ReportFilter) domain.ReportFilter {
	if filter.AllOfficesSelected() {
		filter.Office = domain.AllOffices
	}

	first, last, ok := DateBounds(orders)
	if ok {
		if filter.From.IsZero() {
			filter.From = first
		}
		if filter.To.IsZero() {
			filter.To = last
		}
	}

	return filter
}
