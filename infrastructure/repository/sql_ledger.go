package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/chai-ledger/infrastructure/database/sqldb"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

const (
	officesTable    = "offices"
	teaEntriesTable = "tea_entries"
	ledgerMetaTable = "ledger_meta"

	invoiceSequenceKey = "invoice_sequence"

	// insertBatchSize limita a quantidade de linhas por INSERT
	insertBatchSize = 200
)

type sqlLedgerRepository struct {
	conn sqldb.Conn
}

// NewSQLLedgerRepository persiste o livro-caixa em PostgreSQL ou SQLite.
// Cada Save substitui todas as linhas dentro de uma única transação.
func NewSQLLedgerRepository(conn sqldb.Conn) LedgerRepository {
	return &sqlLedgerRepository{
		conn: conn,
	}
}

func (r *sqlLedgerRepository) Load(ctx context.Context) (domain.Ledger, error) {
	offices, err := r.loadOffices(ctx)
	if err != nil {
		return domain.Ledger{}, err
	}

	orders, err := r.loadOrders(ctx)
	if err != nil {
		return domain.Ledger{}, err
	}

	sequence, err := r.loadInvoiceSequence(ctx)
	if err != nil {
		return domain.Ledger{}, err
	}

	return domain.Ledger{
		Offices:         offices,
		Orders:          orders,
		InvoiceSequence: sequence,
	}, nil
}

func (r *sqlLedgerRepository) loadOffices(ctx context.Context) ([]domain.Office, error) {
	query, args, err := squirrel.
		Select("name", "mobile", "address").
		From(officesTable).
		OrderBy("position ASC").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de escritórios")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar escritórios")
	}
	defer rows.Close()

	offices := make([]domain.Office, 0)
	for rows.Next() {
		var office domain.Office
		if err := rows.Scan(&office.Name, &office.Mobile, &office.Address); err != nil {
			return nil, errors.Wrap(err, "erro ao ler escritório")
		}
		offices = append(offices, office)
	}

	return offices, rows.Err()
}

func (r *sqlLedgerRepository) loadOrders(ctx context.Context) ([]domain.Order, error) {
	query, args, err := squirrel.
		Select(
			"id",
			"office_name",
			"tea_count",
			"coffee_count",
			"tea_price",
			"coffee_price",
			"total_amount",
			"entry_date",
		).
		From(teaEntriesTable).
		OrderBy("position ASC").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de pedidos")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar pedidos")
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID,
			&order.OfficeName,
			&order.TeaCount,
			&order.CoffeeCount,
			&order.TeaPrice,
			&order.CoffeePrice,
			&order.TotalAmount,
			&order.Date,
		)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler pedido")
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *sqlLedgerRepository) loadInvoiceSequence(ctx context.Context) (int, error) {
	query, args, err := squirrel.
		Select("value").
		From(ledgerMetaTable).
		Where(squirrel.Eq{"key": invoiceSequenceKey}).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query de metadados")
	}

	var sequence int
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&sequence)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "erro ao consultar a sequência de faturas")
	}

	return sequence, nil
}

func (r *sqlLedgerRepository) Save(ctx context.Context, ledger domain.Ledger) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{teaEntriesTable, officesTable} {
			query, args, err := squirrel.Delete(table).PlaceholderFormat(r.conn.Placeholder()).ToSql()
			if err != nil {
				return errors.Wrap(err, "erro ao construir a limpeza")
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return errors.Wrapf(err, "erro ao limpar %s", table)
			}
		}

		if err := r.insertOffices(ctx, tx, ledger.Offices); err != nil {
			return err
		}

		if err := r.insertOrders(ctx, tx, ledger.Orders); err != nil {
			return err
		}

		return r.saveInvoiceSequence(ctx, tx, ledger.InvoiceSequence)
	})
}

func (r *sqlLedgerRepository) insertOffices(ctx context.Context, q sqldb.Queryer, offices []domain.Office) error {
	for start := 0; start < len(offices); start += insertBatchSize {
		end := min(start+insertBatchSize, len(offices))

		builder := squirrel.
			Insert(officesTable).
			Columns("position", "name", "mobile", "address").
			PlaceholderFormat(r.conn.Placeholder())

		for i, office := range offices[start:end] {
			builder = builder.Values(start+i, office.Name, office.Mobile, office.Address)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir a inserção de escritórios")
		}
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrap(err, "erro ao inserir escritórios")
		}
	}
	return nil
}

func (r *sqlLedgerRepository) insertOrders(ctx context.Context, q sqldb.Queryer, orders []domain.Order) error {
	for start := 0; start < len(orders); start += insertBatchSize {
		end := min(start+insertBatchSize, len(orders))

		builder := squirrel.
			Insert(teaEntriesTable).
			Columns(
				"position",
				"id",
				"office_name",
				"tea_count",
				"coffee_count",
				"tea_price",
				"coffee_price",
				"total_amount",
				"entry_date",
			).
			PlaceholderFormat(r.conn.Placeholder())

		for i, order := range orders[start:end] {
			builder = builder.Values(
				start+i,
				order.ID,
				order.OfficeName,
				order.TeaCount,
				order.CoffeeCount,
				moneyValue(order.TeaPrice),
				moneyValue(order.CoffeePrice),
				moneyValue(order.TotalAmount),
				order.Date,
			)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir a inserção de pedidos")
		}
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrap(err, "erro ao inserir pedidos")
		}
	}
	return nil
}

func (r *sqlLedgerRepository) saveInvoiceSequence(ctx context.Context, q sqldb.Queryer, sequence int) error {
	query, args, err := squirrel.
		Insert(ledgerMetaTable).
		Columns("key", "value").
		Values(invoiceSequenceKey, sequence).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a gravação da sequência")
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao gravar a sequência de faturas")
	}
	return nil
}

// moneyValue grava o decimal como texto para não passar por float
func moneyValue(d decimal.Decimal) string {
	return d.String()
}
