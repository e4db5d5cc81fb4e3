// Package invoicing transforma um conjunto filtrado de pedidos em uma fatura.
package invoicing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

type ComposeInput struct {
	Business  domain.BusinessProfile
	Sequence  int
	IssueDate domain.Date
	// Office nil deixa o bloco BILL TO em branco
	Office *domain.Office
	Orders []domain.Order
}

// Compose é uma função pura: mesma entrada, mesma fatura, sem I/O
func Compose(in ComposeInput) *domain.Invoice {
	invoice := &domain.Invoice{
		Business:  in.Business,
		Number:    domain.FormatInvoiceNumber(in.Sequence),
		IssueDate: in.IssueDate,
		DueDate:   in.IssueDate.AddDays(in.Business.DueDays),
		Lines:     make([]domain.InvoiceLine, 0, len(in.Orders)*2),
		Signatory: in.Business.Name,
	}

	if in.Office != nil {
		invoice.BillTo = domain.BillTo{
			Name:    in.Office.Name,
			Mobile:  in.Office.Mobile,
			Address: in.Office.Address,
		}
	}

	for _, order := range in.Orders {
		if order.TeaCount != 0 {
			invoice.Lines = append(invoice.Lines, newLine(in.Business.TeaLabel, in.Business.QuantityUnit, order.Date, order.TeaCount, order.TeaPrice))
		}
		if order.CoffeeCount != 0 {
			invoice.Lines = append(invoice.Lines, newLine(in.Business.CoffeeLabel, in.Business.QuantityUnit, order.Date, order.CoffeeCount, order.CoffeePrice))
		}
	}

	subtotal := decimal.Zero
	for _, line := range invoice.Lines {
		subtotal = subtotal.Add(line.Amount)
	}

	// Não há impostos, descontos ou saldo anterior
	invoice.Subtotal = subtotal
	invoice.Total = subtotal
	invoice.Balance = subtotal
	invoice.AmountInWords = AmountInWords(subtotal)

	return invoice
}

func newLine(description, unit string, date domain.Date, quantity int, price decimal.Decimal) domain.InvoiceLine {
	quantity = domain.CoerceQuantity(float64(quantity))
	return domain.InvoiceLine{
		Description: description,
		Date:        date,
		Quantity:    quantity,
		Unit:        unit,
		UnitPrice:   price,
		Amount:      domain.LineAmount(price, quantity),
	}
}

// AmountInWords repete o valor numérico; a escrita por extenso não existe
func AmountInWords(total decimal.Decimal) string {
	return fmt.Sprintf("%s Rupees Only", total.StringFixed(2))
}
