package utils

import (
	stdjson "encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "vazio", input: "", want: 0},
		{name: "inteiro", input: "3", want: 3},
		{name: "fração truncada", input: "2.9", want: 2},
		{name: "NaN", input: "NaN", want: 0},
		{name: "negativo mantido", input: "-2", want: -2},
		{name: "texto", input: "dois", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuantity("tea_count", tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, domain.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("tea_price", " 12.50 ")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.5").Equal(amount))

	amount, err = ParseAmount("tea_price", "")
	require.NoError(t, err)
	assert.True(t, amount.IsZero())

	_, err = ParseAmount("tea_price", "abc")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestParseDateRange(t *testing.T) {
	from, to, err := ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", from.String())
	assert.Equal(t, "2024-01-31", to.String())

	// Intervalo invertido é aceito; o filtro apenas não encontra entregas
	from, to, err = ParseDateRange("2024-02-01", "2024-01-31")
	require.NoError(t, err)
	assert.True(t, to.Before(from))

	var validationErr *domain.ValidationError
	_, _, err = ParseDateRange("01/02/2024", "")
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "from", validationErr.Field)
}

func TestPrettyJson(t *testing.T) {
	out, err := PrettyJson([]byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", out)

	_, err = PrettyJson([]byte(`{`))
	assert.Error(t, err)
}

func TestJSON_DecimalAsNumber(t *testing.T) {
	order := domain.Order{
		OfficeName:  "Acme",
		TeaPrice:    decimal.RequireFromString("12.50"),
		TotalAmount: decimal.NewFromInt(35),
	}

	data, err := JSON.Marshal(order)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tea_price":12.5`)
	assert.Contains(t, string(data), `"total_amount":35`)
	assert.Contains(t, string(data), `"coffee_price":0`)

	out, err := PrettyJson(order)
	require.NoError(t, err)
	assert.Contains(t, out, `"total_amount": 35`)

	var decoded domain.Order
	require.NoError(t, JSON.Unmarshal(data, &decoded))
	assert.True(t, decoded.TeaPrice.Equal(order.TeaPrice))

	// Fora desta configuração o decimal mantém o padrão da biblioteca
	assert.False(t, decimal.MarshalJSONWithoutQuotes)
	std, err := stdjson.Marshal(order)
	require.NoError(t, err)
	assert.Contains(t, string(std), `"tea_price":"12.5"`)
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 10)
}
