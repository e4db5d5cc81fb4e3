// Package aggregating calcula os totais e agrupamentos exibidos no painel e no relatório.
// As funções deste arquivo são puras e nunca alteram a coleção recebida.
package aggregating

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

// Totals soma chá, café e faturamento de todos os pedidos e conta os escritórios
func Totals(offices []domain.Office, orders []domain.Order) domain.GlobalTotals {
	totals := domain.GlobalTotals{
		Offices: len(offices),
		Revenue: decimal.Zero,
	}

	for _, order := range orders {
		totals.Tea += order.TeaCount
		totals.Coffee += order.CoffeeCount
		totals.Revenue = totals.Revenue.Add(order.TotalAmount)
	}

	return totals
}

// MonthlySeries agrupa por mês em ordem crescente. Meses sem pedidos não aparecem.
func MonthlySeries(orders []domain.Order) []domain.MonthlyPoint {
	byMonth := make(map[string]*domain.MonthlyPoint)

	for _, order := range orders {
		month := order.Date.MonthKey()
		point, ok := byMonth[month]
		if !ok {
			point = &domain.MonthlyPoint{Month: month}
			byMonth[month] = point
		}
		point.Tea += order.TeaCount
		point.Coffee += order.CoffeeCount
	}

	series := make([]domain.MonthlyPoint, 0, len(byMonth))
	for _, point := range byMonth {
		series = append(series, *point)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Month < series[j].Month
	})

	return series
}

// OfficeSeries agrupa por escritório, apenas os que têm ao menos um pedido
func OfficeSeries(orders []domain.Order) []domain.OfficePoint {
	byOffice := make(map[string]*domain.OfficePoint)

	for _, order := range orders {
		point, ok := byOffice[order.OfficeName]
		if !ok {
			point = &domain.OfficePoint{OfficeName: order.OfficeName}
			byOffice[order.OfficeName] = point
		}
		point.Tea += order.TeaCount
		point.Coffee += order.CoffeeCount
	}

	series := make([]domain.OfficePoint, 0, len(byOffice))
	for _, point := range byOffice {
		series = append(series, *point)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].OfficeName < series[j].OfficeName
	})

	return series
}

// Filter aplica o intervalo [From, To], inclusivo nas duas pontas, e o escritório.
// Datas zero deixam o lado correspondente aberto. A ordem original é mantida.
func Filter(orders []domain.Order, filter domain.ReportFilter) []domain.Order {
	office := strings.TrimSpace(filter.Office)
	allOffices := filter.AllOfficesSelected()

	filtered := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if !filter.From.IsZero() && order.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && order.Date.After(filter.To) {
			continue
		}
		if !allOffices && order.OfficeName != office {
			continue
		}
		filtered = append(filtered, order)
	}

	return filtered
}

type monthOffice struct {
	month  string
	office string
}

// GroupByMonthOffice soma quantidades e total por par (mês, escritório),
// ordenado por mês e depois por escritório
func GroupByMonthOffice(orders []domain.Order) []domain.MonthOfficeSummary {
	groups := make(map[monthOffice]*domain.MonthOfficeSummary)

	for _, order := range orders {
		key := monthOffice{month: order.Date.MonthKey(), office: order.OfficeName}
		summary, ok := groups[key]
		if !ok {
			summary = &domain.MonthOfficeSummary{
				Month:      key.month,
				OfficeName: key.office,
				Total:      decimal.Zero,
			}
			groups[key] = summary
		}
		summary.Tea += order.TeaCount
		summary.Coffee += order.CoffeeCount
		summary.Total = summary.Total.Add(order.TotalAmount)
	}

	summaries := make([]domain.MonthOfficeSummary, 0, len(groups))
	for _, summary := range groups {
		summaries = append(summaries, *summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Month != summaries[j].Month {
			return summaries[i].Month < summaries[j].Month
		}
		return summaries[i].OfficeName < summaries[j].OfficeName
	})

	return summaries
}

// GrandTotal soma o total gravado de cada pedido
func GrandTotal(orders []domain.Order) decimal.Decimal {
	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.TotalAmount)
	}
	return total
}

// DateBounds devolve a menor e a maior data entre os pedidos datados
func DateBounds(orders []domain.Order) (domain.Date, domain.Date, bool) {
	var first, last domain.Date
	found := false

	for _, order := range orders {
		if order.Date.IsZero() {
			continue
		}
		if !found || order.Date.Before(first) {
			first = order.Date
		}
		if !found || order.Date.After(last) {
			last = order.Date
		}
		found = true
	}

	return first, last, found
}
