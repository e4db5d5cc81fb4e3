// Package repository contém as implementações de persistência do livro-caixa
package repository

import (
	"context"

	"github.com/vfg2006/chai-ledger/internal/domain"
)

// LedgerRepository grava e lê o estado completo de uma vez.
// Save sempre substitui todo o conteúdo anterior.
type LedgerRepository interface {
	Load(ctx context.Context) (domain.Ledger, error)
	Save(ctx context.Context, ledger domain.Ledger) error
}
