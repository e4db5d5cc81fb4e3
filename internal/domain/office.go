package domain

import "strings"

type Office struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

// Normalize remove espaços das bordas de todos os campos
func (o Office) Normalize() Office {
	return Office{
		Name:    strings.TrimSpace(o.Name),
		Mobile:  strings.TrimSpace(o.Mobile),
		Address: strings.TrimSpace(o.Address),
	}
}

func (o Office) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return NewValidationError("name", "nome do escritório é obrigatório")
	}
	if strings.TrimSpace(o.Mobile) == "" {
		return NewValidationError("mobile", "telefone do escritório é obrigatório")
	}
	return nil
}
