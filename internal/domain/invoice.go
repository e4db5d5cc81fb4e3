package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BusinessProfile são os dados fixos do fornecedor impressos no cabeçalho
type BusinessProfile struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	TeaLabel     string `json:"tea_label"`
	CoffeeLabel  string `json:"coffee_label"`
	QuantityUnit string `json:"quantity_unit"`
	Currency     string `json:"currency"`
	DueDays      int    `json:"due_days"`
}

func DefaultBusinessProfile() BusinessProfile {
	return BusinessProfile{
		Name:         "7 Star Chai",
		Address:      "2/635, Udhana Darwaja, Malezaiwhar Mohalla, Rustompura, Surat, Gujarat, 395002",
		Phone:        "9021579599",
		TeaLabel:     "7 STAR CHAI",
		CoffeeLabel:  "7 STAR COFFEE",
		QuantityUnit: "PC3",
		Currency:     "Rs.",
	}
}

type BillTo struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

func (b BillTo) IsBlank() bool {
	return b.Name == "" && b.Mobile == "" && b.Address == ""
}

type InvoiceLine struct {
	Description string          `json:"description"`
	Date        Date            `json:"date"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice é o documento pronto para ser desenhado por um Renderer
type Invoice struct {
	Business      BusinessProfile `json:"business"`
	Number        string          `json:"number"`
	IssueDate     Date            `json:"issue_date"`
	DueDate       Date            `json:"due_date"`
	BillTo        BillTo          `json:"bill_to"`
	Lines         []InvoiceLine   `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
	Balance       decimal.Decimal `json:"balance"`
	AmountInWords string          `json:"amount_in_words"`
	Signatory     string          `json:"signatory"`
	Warnings      []string        `json:"warnings,omitempty"`
}

// FormatInvoiceNumber formata o número sequencial com três dígitos
func FormatInvoiceNumber(sequence int) string {
	return fmt.Sprintf("%03d", sequence)
}

// FormatMoney formata um valor com o rótulo de moeda, ex: Rs.80.00
func FormatMoney(currency string, v decimal.Decimal) string {
	return currency + v.StringFixed(2)
}

// QuantityLabel formata a quantidade com a unidade, ex: 5 PC3
func (l InvoiceLine) QuantityLabel() string {
	if l.Unit == "" {
		return fmt.Sprintf("%d", l.Quantity)
	}
	return fmt.Sprintf("%d %s", l.Quantity, l.Unit)
}
