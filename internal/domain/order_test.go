package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewOrder_TotalAmount(t *testing.T) {
	tests := []struct {
		name  string
		input OrderInput
		want  string
	}{
		{
			name: "Chá e café",
			input: OrderInput{
				OfficeName:  "Acme",
				TeaCount:    3,
				CoffeeCount: 2,
				TeaPrice:    decimal.NewFromInt(10),
				CoffeePrice: decimal.NewFromInt(15),
			},
			want: "60",
		},
		{
			name: "Preços com centavos não perdem precisão",
			input: OrderInput{
				OfficeName: "Acme",
				TeaCount:   3,
				TeaPrice:   decimal.RequireFromString("0.10"),
			},
			want: "0.3",
		},
		{
			name:  "Pedido vazio",
			input: OrderInput{OfficeName: "Acme"},
			want:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := NewOrder("abc123", tt.input)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(order.TotalAmount), "total %s", order.TotalAmount)
			assert.Equal(t, "abc123", order.ID)
		})
	}
}

func TestOrderInput_Validate(t *testing.T) {
	valid := OrderInput{
		OfficeName:  "Acme",
		TeaCount:    1,
		CoffeeCount: 1,
		TeaPrice:    decimal.NewFromInt(10),
		CoffeePrice: decimal.NewFromInt(15),
		Date:        NewDate(2024, time.January, 5),
	}

	tests := []struct {
		name   string
		mutate func(in *OrderInput)
		field  string
	}{
		{name: "Válido", mutate: func(in *OrderInput) {}},
		{name: "Escritório vazio", mutate: func(in *OrderInput) { in.OfficeName = " " }},
		{name: "Chá negativo", mutate: func(in *OrderInput) { in.TeaCount = -1 }, field: "tea_count"},
		{name: "Café negativo", mutate: func(in *OrderInput) { in.CoffeeCount = -1 }, field: "coffee_count"},
		{name: "Preço do chá negativo", mutate: func(in *OrderInput) { in.TeaPrice = decimal.NewFromInt(-1) }, field: "tea_price"},
		{name: "Preço do café negativo", mutate: func(in *OrderInput) { in.CoffeePrice = decimal.NewFromInt(-1) }, field: "coffee_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := in.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, ErrValidation)
			var vErr *ValidationError
			if assert.True(t, errors.As(err, &vErr)) {
				assert.Equal(t, tt.field, vErr.Field)
			}
		})
	}
}

func TestOffice_Validate(t *testing.T) {
	assert.NoError(t, Office{Name: "Acme", Mobile: "999"}.Validate())
	assert.ErrorIs(t, Office{Name: "", Mobile: "999"}.Validate(), ErrValidation)
	assert.ErrorIs(t, Office{Name: "Acme", Mobile: "   "}.Validate(), ErrValidation)
}

func TestCoerceQuantity(t *testing.T) {
	assert.Equal(t, 5, CoerceQuantity(5))
	assert.Equal(t, 2, CoerceQuantity(2.9))
	assert.Equal(t, 0, CoerceQuantity(math.NaN()))
	assert.Equal(t, 0, CoerceQuantity(math.Inf(1)))
	assert.Equal(t, 0, CoerceQuantity(-3))
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("disco cheio")
	err := NewPersistenceError("salvar ledger", cause)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disco cheio")
}

func TestLedger_Clone(t *testing.T) {
	original := Ledger{
		Offices: []Office{{Name: "Acme", Mobile: "1"}},
		Orders:  []Order{{OfficeName: "Acme"}},
	}

	clone := original.Clone()
	clone.Offices[0].Name = "Outro"
	clone.Orders = append(clone.Orders, Order{OfficeName: "Novo"})

	assert.Equal(t, "Acme", original.Offices[0].Name)
	assert.Len(t, original.Orders, 1)
}
