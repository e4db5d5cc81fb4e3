package aggregating

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func newOrder(office string, tea int, teaPrice int64, coffee int, coffeePrice int64, date domain.Date) domain.Order {
	return domain.NewOrder("", domain.OrderInput{
		OfficeName:  office,
		TeaCount:    tea,
		CoffeeCount: coffee,
		TeaPrice:    decimal.NewFromInt(teaPrice),
		CoffeePrice: decimal.NewFromInt(coffeePrice),
		Date:        date,
	})
}

func scenarioOrders() []domain.Order {
	return []domain.Order{
		newOrder("A", 2, 10, 1, 15, domain.NewDate(2024, time.January, 5)),
		newOrder("A", 0, 0, 3, 15, domain.NewDate(2024, time.February, 1)),
	}
}

func TestFilter_Scenarios(t *testing.T) {
	orders := scenarioOrders()

	january := Filter(orders, domain.ReportFilter{
		Office: "A",
		From:   domain.NewDate(2024, time.January, 1),
		To:     domain.NewDate(2024, time.January, 31),
	})
	assert.Equal(t, orders[:1], january)
	assert.Equal(t, "35.00", GrandTotal(january).StringFixed(2))

	both := Filter(orders, domain.ReportFilter{
		Office: "A",
		From:   domain.NewDate(2024, time.January, 1),
		To:     domain.NewDate(2024, time.February, 28),
	})
	assert.Equal(t, orders, both)
	assert.Equal(t, "80.00", GrandTotal(both).StringFixed(2))
}

func TestFilter_InclusiveBounds(t *testing.T) {
	orders := []domain.Order{
		newOrder("A", 1, 10, 0, 0, domain.NewDate(2024, time.January, 1)),
		newOrder("A", 1, 10, 0, 0, domain.NewDate(2024, time.January, 15)),
		newOrder("A", 1, 10, 0, 0, domain.NewDate(2024, time.January, 31)),
		newOrder("A", 1, 10, 0, 0, domain.NewDate(2024, time.February, 1)),
	}

	got := Filter(orders, domain.ReportFilter{
		Office: domain.AllOffices,
		From:   domain.NewDate(2024, time.January, 1),
		To:     domain.NewDate(2024, time.January, 31),
	})
	assert.Equal(t, orders[:3], got)
}

func TestFilter_OfficeSelection(t *testing.T) {
	orders := []domain.Order{
		newOrder("A", 1, 10, 0, 0, domain.NewDate(2024, time.January, 2)),
		newOrder("B", 1, 10, 0, 0, domain.NewDate(2024, time.January, 3)),
		newOrder("A", 2, 10, 0, 0, domain.NewDate(2024, time.January, 4)),
	}

	assert.Equal(t, orders, Filter(orders, domain.ReportFilter{Office: domain.AllOffices}))
	assert.Equal(t, orders, Filter(orders, domain.ReportFilter{}))
	assert.Equal(t, []domain.Order{orders[1]}, Filter(orders, domain.ReportFilter{Office: "B"}))
	assert.Empty(t, Filter(orders, domain.ReportFilter{Office: "C"}))
}

func TestTotals(t *testing.T) {
	offices := []domain.Office{{Name: "A"}, {Name: "B"}}

	got := Totals(offices, scenarioOrders())
	want := domain.GlobalTotals{Offices: 2, Tea: 2, Coffee: 4, Revenue: decimal.NewFromInt(80)}

	if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
		t.Errorf("Totals() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyCollection(t *testing.T) {
	totals := Totals(nil, nil)
	assert.Equal(t, 0, totals.Offices)
	assert.Equal(t, 0, totals.Tea)
	assert.Equal(t, 0, totals.Coffee)
	assert.True(t, totals.Revenue.IsZero())

	assert.Empty(t, MonthlySeries(nil))
	assert.Empty(t, OfficeSeries(nil))
	assert.Empty(t, GroupByMonthOffice(nil))
	assert.True(t, GrandTotal(nil).IsZero())

	_, _, ok := DateBounds(nil)
	assert.False(t, ok)
}

func TestMonthlySeries(t *testing.T) {
	orders := []domain.Order{
		newOrder("B", 1, 10, 1, 15, domain.NewDate(2024, time.March, 2)),
		newOrder("A", 2, 10, 0, 0, domain.NewDate(2024, time.January, 5)),
		newOrder("B", 3, 10, 2, 15, domain.NewDate(2024, time.January, 28)),
		newOrder("A", 1, 10, 0, 0, domain.NewDate(2023, time.December, 31)),
	}

	want := []domain.MonthlyPoint{
		{Month: "2023-12", Tea: 1},
		{Month: "2024-01", Tea: 5, Coffee: 2},
		{Month: "2024-03", Tea: 1, Coffee: 1},
	}

	if diff := cmp.Diff(want, MonthlySeries(orders)); diff != "" {
		t.Errorf("MonthlySeries() mismatch (-want +got):\n%s", diff)
	}
}

func TestOfficeSeries(t *testing.T) {
	orders := []domain.Order{
		newOrder("Zeta", 1, 10, 0, 0, domain.NewDate(2024, time.January, 1)),
		newOrder("Alpha", 2, 10, 1, 15, domain.NewDate(2024, time.January, 2)),
		newOrder("Zeta", 0, 0, 4, 15, domain.NewDate(2024, time.February, 2)),
	}

	want := []domain.OfficePoint{
		{OfficeName: "Alpha", Tea: 2, Coffee: 1},
		{OfficeName: "Zeta", Tea: 1, Coffee: 4},
	}

	if diff := cmp.Diff(want, OfficeSeries(orders)); diff != "" {
		t.Errorf("OfficeSeries() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByMonthOffice(t *testing.T) {
	orders := []domain.Order{
		newOrder("B", 1, 10, 0, 0, domain.NewDate(2024, time.January, 3)),
		newOrder("A", 2, 10, 1, 15, domain.NewDate(2024, time.January, 5)),
		newOrder("A", 1, 10, 0, 0, domain.NewDate(2024, time.January, 20)),
		newOrder("A", 0, 0, 3, 15, domain.NewDate(2024, time.February, 1)),
	}

	want := []domain.MonthOfficeSummary{
		{Month: "2024-01", OfficeName: "A", Tea: 3, Coffee: 1, Total: decimal.NewFromInt(45)},
		{Month: "2024-01", OfficeName: "B", Tea: 1, Coffee: 0, Total: decimal.NewFromInt(10)},
		{Month: "2024-02", OfficeName: "A", Tea: 0, Coffee: 3, Total: decimal.NewFromInt(45)},
	}

	if diff := cmp.Diff(want, GroupByMonthOffice(orders), decimalComparer); diff != "" {
		t.Errorf("GroupByMonthOffice() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	orders := scenarioOrders()
	before := make([]domain.Order, len(orders))
	copy(before, orders)

	_ = Filter(orders, domain.ReportFilter{Office: "Z"})
	_ = GroupByMonthOffice(orders)

	assert.Equal(t, before, orders)
}

func TestDateBounds(t *testing.T) {
	orders := []domain.Order{
		newOrder("A", 1, 10, 0, 0, domain.NewDate(2024, time.March, 1)),
		{OfficeName: "sem data"},
		newOrder("A", 1, 10, 0, 0, domain.NewDate(2023, time.November, 9)),
	}

	first, last, ok := DateBounds(orders)
	assert.True(t, ok)
	assert.Equal(t, "2023-11-09", first.String())
	assert.Equal(t, "2024-03-01", last.String())
}
