package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

// ParseQuantity converte o texto de um campo de quantidade.
// Vazio e NaN viram zero, frações são truncadas e negativos são mantidos
// para que a validação do pedido os rejeite.
func ParseQuantity(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, domain.NewValidationError(field, "quantidade inválida")
	}

	if f < 0 && !math.IsInf(f, 0) {
		return int(math.Trunc(f)), nil
	}
	return domain.CoerceQuantity(f), nil
}

// ParseAmount converte o texto de um campo de preço; vazio vira zero
func ParseAmount(field, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, "valor inválido")
	}
	return amount, nil
}
