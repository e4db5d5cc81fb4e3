package repository

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

type fileLedgerRepository struct {
	path  string
	codec codec
}

// NewFileLedgerRepository grava o livro-caixa em um único arquivo JSON ou YAML,
// escolhido pela extensão do caminho
func NewFileLedgerRepository(path string) LedgerRepository {
	return &fileLedgerRepository{
		path:  path,
		codec: codecFor(path),
	}
}

// Load devolve coleções vazias quando o arquivo ainda não existe
func (r *fileLedgerRepository) Load(ctx context.Context) (domain.Ledger, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Ledger{Offices: []domain.Office{}, Orders: []domain.Order{}}, nil
		}
		return domain.Ledger{}, errors.Wrapf(err, "erro ao ler %s", r.path)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Ledger{Offices: []domain.Office{}, Orders: []domain.Order{}}, nil
	}

	var doc fileDocument
	if err := r.codec.decode(data, &doc); err != nil {
		return domain.Ledger{}, errors.Wrapf(err, "erro ao decodificar %s", r.path)
	}

	return fromDocument(doc), nil
}

// Save escreve em um arquivo temporário no mesmo diretório e renomeia por cima do original,
// então uma falha no meio da escrita nunca deixa o arquivo truncado
func (r *fileLedgerRepository) Save(ctx context.Context, ledger domain.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := r.codec.encode(toDocument(ledger))
	if err != nil {
		return errors.Wrap(err, "erro ao codificar o livro-caixa")
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar diretório %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "erro ao criar arquivo temporário")
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return errors.Wrap(err, "erro ao escrever arquivo temporário")
	}

	if err := tmp.Sync(); err != nil {
		cleanup()
		return errors.Wrap(err, "erro ao sincronizar arquivo temporário")
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "erro ao fechar arquivo temporário")
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "erro ao substituir %s", r.path)
	}

	return nil
}
