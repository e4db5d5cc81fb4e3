package aggregating

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

type staticSource struct {
	offices []domain.Office
	orders  []domain.Order
}

func (s staticSource) Offices() []domain.Office { return s.offices }
func (s staticSource) Orders() []domain.Order   { return s.orders }

func TestService_Dashboard(t *testing.T) {
	service := NewService(staticSource{
		offices: []domain.Office{{Name: "A"}},
		orders:  scenarioOrders(),
	})

	dashboard := service.Dashboard(context.Background())
	assert.Equal(t, 1, dashboard.Totals.Offices)
	assert.Equal(t, "80.00", dashboard.Totals.Revenue.StringFixed(2))
	assert.Len(t, dashboard.Monthly, 2)
	assert.Len(t, dashboard.ByOffice, 1)
}

func TestService_Dashboard_Empty(t *testing.T) {
	dashboard := NewService(staticSource{}).Dashboard(context.Background())

	assert.Equal(t, 0, dashboard.Totals.Tea)
	assert.True(t, dashboard.Totals.Revenue.IsZero())
	assert.Empty(t, dashboard.Monthly)
	assert.Empty(t, dashboard.ByOffice)
}

func TestService_Report_DefaultsToOrderBounds(t *testing.T) {
	service := NewService(staticSource{orders: scenarioOrders()})

	report := service.Report(context.Background(), domain.ReportFilter{})

	assert.Equal(t, domain.AllOffices, report.Filter.Office)
	assert.Equal(t, "2024-01-05", report.Filter.From.String())
	assert.Equal(t, "2024-02-01", report.Filter.To.String())
	assert.Len(t, report.Orders, 2)
	assert.Equal(t, "80.00", report.GrandTotal.StringFixed(2))
	assert.Len(t, report.MonthlySummary, 2)
}

func TestService_Report_InvertedRange(t *testing.T) {
	service := NewService(staticSource{orders: scenarioOrders()})

	report := service.Report(context.Background(), domain.ReportFilter{
		From: domain.NewDate(2024, time.February, 1),
		To:   domain.NewDate(2024, time.January, 1),
	})

	assert.Empty(t, report.Orders)
	assert.True(t, report.GrandTotal.IsZero())
	assert.Empty(t, report.MonthlySummary)
	assert.Equal(t, "2024-02-01", report.Filter.From.String())
}

func TestService_FilterOrders(t *testing.T) {
	service := NewService(staticSource{orders: scenarioOrders()})

	orders := service.FilterOrders(context.Background(), domain.ReportFilter{
		Office: "A",
		From:   domain.NewDate(2024, time.January, 1),
		To:     domain.NewDate(2024, time.January, 31),
	})
	assert.Len(t, orders, 1)
}
