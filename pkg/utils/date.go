package utils

import (
	"github.com/vfg2006/chai-ledger/internal/domain"
)

// ParseDate lê uma data YYYY-MM-DD de um parâmetro; vazio devolve a data zero
func ParseDate(field, value string) (domain.Date, error) {
	date, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, domain.NewValidationError(field, "data inválida, use AAAA-MM-DD")
	}
	return date, nil
}

// ParseDateRange lê o par from/to; um intervalo invertido simplesmente não seleciona nada
func ParseDateRange(from, to string) (domain.Date, domain.Date, error) {
	fromDate, err := ParseDate("from", from)
	if err != nil {
		return domain.Date{}, domain.Date{}, err
	}

	toDate, err := ParseDate("to", to)
	if err != nil {
		return domain.Date{}, domain.Date{}, err
	}

	return fromDate, toDate, nil
}
