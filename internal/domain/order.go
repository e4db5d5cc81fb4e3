package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Order é o registro de uma entrega de chá e café para um escritório
type Order struct {
	ID          string          `json:"id,omitempty"`
	OfficeName  string          `json:"office_name"`
	TeaCount    int             `json:"tea_count"`
	CoffeeCount int             `json:"coffee_count"`
	TeaPrice    decimal.Decimal `json:"tea_price"`
	CoffeePrice decimal.Decimal `json:"coffee_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Date        Date            `json:"date"`
}

// OrderInput contém os dados informados na tela de lançamento
type OrderInput struct {
	OfficeName  string          `json:"office_name"`
	TeaCount    int             `json:"tea_count"`
	CoffeeCount int             `json:"coffee_count"`
	TeaPrice    decimal.Decimal `json:"tea_price"`
	CoffeePrice decimal.Decimal `json:"coffee_price"`
	Date        Date            `json:"date"`
}

// Validate só recusa quantidades e preços negativos. O escritório pode ficar em
// branco ou apontar para um nome que não existe mais.
func (in OrderInput) Validate() error {
	if in.TeaCount < 0 {
		return NewValidationError("tea_count", "quantidade de chá não pode ser negativa")
	}
	if in.CoffeeCount < 0 {
		return NewValidationError("coffee_count", "quantidade de café não pode ser negativa")
	}
	if in.TeaPrice.IsNegative() {
		return NewValidationError("tea_price", "preço do chá não pode ser negativo")
	}
	if in.CoffeePrice.IsNegative() {
		return NewValidationError("coffee_price", "preço do café não pode ser negativo")
	}
	return nil
}

// NewOrder cria o pedido calculando o total no momento da criação.
// O total nunca é recalculado depois disso.
func NewOrder(id string, in OrderInput) Order {
	return Order{
		ID:          id,
		OfficeName:  strings.TrimSpace(in.OfficeName),
		TeaCount:    in.TeaCount,
		CoffeeCount: in.CoffeeCount,
		TeaPrice:    in.TeaPrice,
		CoffeePrice: in.CoffeePrice,
		TotalAmount: LineAmount(in.TeaPrice, in.TeaCount).Add(LineAmount(in.CoffeePrice, in.CoffeeCount)),
		Date:        in.Date,
	}
}

// LineAmount multiplica o preço unitário pela quantidade
func LineAmount(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// CoerceQuantity converte um valor numérico qualquer em quantidade inteira.
// NaN, infinito e negativos viram zero; frações são truncadas.
func CoerceQuantity(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
