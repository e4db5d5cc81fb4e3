package invoicing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

func scenarioOrders() []domain.Order {
	return []domain.Order{
		domain.NewOrder("o1", domain.OrderInput{
			OfficeName:  "A",
			TeaCount:    2,
			CoffeeCount: 1,
			TeaPrice:    decimal.NewFromInt(10),
			CoffeePrice: decimal.NewFromInt(15),
			Date:        domain.NewDate(2024, time.January, 5),
		}),
		domain.NewOrder("o2", domain.OrderInput{
			OfficeName:  "A",
			CoffeeCount: 3,
			CoffeePrice: decimal.NewFromInt(15),
			Date:        domain.NewDate(2024, time.February, 1),
		}),
	}
}

func TestCompose(t *testing.T) {
	office := domain.Office{Name: "A", Mobile: "9999999999", Address: "Ring Road"}

	invoice := Compose(ComposeInput{
		Business:  domain.DefaultBusinessProfile(),
		Sequence:  7,
		IssueDate: domain.NewDate(2024, time.March, 1),
		Office:    &office,
		Orders:    scenarioOrders(),
	})

	assert.Equal(t, "007", invoice.Number)
	assert.Equal(t, "2024-03-01", invoice.IssueDate.String())
	assert.Equal(t, "2024-03-01", invoice.DueDate.String())
	assert.Equal(t, domain.BillTo{Name: "A", Mobile: "9999999999", Address: "Ring Road"}, invoice.BillTo)

	require.Len(t, invoice.Lines, 3)
	assert.Equal(t, "7 STAR CHAI", invoice.Lines[0].Description)
	assert.Equal(t, 2, invoice.Lines[0].Quantity)
	assert.Equal(t, "20.00", invoice.Lines[0].Amount.StringFixed(2))
	assert.Equal(t, "7 STAR COFFEE", invoice.Lines[1].Description)
	assert.Equal(t, "15.00", invoice.Lines[1].Amount.StringFixed(2))
	assert.Equal(t, "7 STAR COFFEE", invoice.Lines[2].Description)
	assert.Equal(t, "2024-02-01", invoice.Lines[2].Date.String())
	assert.Equal(t, "45.00", invoice.Lines[2].Amount.StringFixed(2))
	assert.Equal(t, "PC3", invoice.Lines[2].Unit)

	assert.Equal(t, "80.00", invoice.Subtotal.StringFixed(2))
	assert.True(t, invoice.Subtotal.Equal(invoice.Total))
	assert.True(t, invoice.Total.Equal(invoice.Balance))
	assert.Equal(t, "80.00 Rupees Only", invoice.AmountInWords)
	assert.Equal(t, "7 Star Chai", invoice.Signatory)
}

func TestCompose_SubtotalIsSumOfLines(t *testing.T) {
	orders := scenarioOrders()
	// Total gravado divergente não entra na fatura; só as linhas contam
	orders[0].TotalAmount = decimal.NewFromInt(999)

	invoice := Compose(ComposeInput{Business: domain.DefaultBusinessProfile(), Orders: orders})

	sum := decimal.Zero
	for _, line := range invoice.Lines {
		sum = sum.Add(line.Amount)
	}
	assert.True(t, sum.Equal(invoice.Subtotal))
	assert.Equal(t, "80.00", invoice.Total.StringFixed(2))
}

func TestCompose_AllOfficesLeavesBillToBlank(t *testing.T) {
	invoice := Compose(ComposeInput{
		Business: domain.DefaultBusinessProfile(),
		Orders:   scenarioOrders(),
	})

	assert.True(t, invoice.BillTo.IsBlank())
	assert.Len(t, invoice.Lines, 3)
}

func TestCompose_NoOrders(t *testing.T) {
	invoice := Compose(ComposeInput{Business: domain.DefaultBusinessProfile(), Sequence: 1})

	assert.Empty(t, invoice.Lines)
	assert.True(t, invoice.Total.IsZero())
	assert.Equal(t, "0.00 Rupees Only", invoice.AmountInWords)
	assert.Equal(t, "001", invoice.Number)
}

func TestCompose_DueDays(t *testing.T) {
	business := domain.DefaultBusinessProfile()
	business.DueDays = 15

	invoice := Compose(ComposeInput{Business: business, IssueDate: domain.NewDate(2024, time.January, 20)})
	assert.Equal(t, "2024-02-04", invoice.DueDate.String())
}

func TestCompose_UsesRecordedPrice(t *testing.T) {
	orders := []domain.Order{{
		OfficeName:  "A",
		TeaCount:    3,
		TeaPrice:    decimal.RequireFromString("12.50"),
		TotalAmount: decimal.RequireFromString("37.50"),
		Date:        domain.NewDate(2024, time.January, 1),
	}}

	invoice := Compose(ComposeInput{Business: domain.DefaultBusinessProfile(), Orders: orders})

	require.Len(t, invoice.Lines, 1)
	assert.Equal(t, "12.50", invoice.Lines[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "37.50", invoice.Lines[0].Amount.StringFixed(2))
}
