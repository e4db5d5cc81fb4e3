package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/chai-ledger/internal/config"
	_ "modernc.org/sqlite"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
	Dialect() string
	Placeholder() squirrel.PlaceholderFormat
}

type Connection struct {
	*sql.DB
	dialect string
	dsn     string
}

// NewPostgres abre a conexão com o PostgreSQL e aplica as migrações pendentes
func NewPostgres(ctx context.Context, cfg config.Database) (*Connection, error) {
	return open(ctx, DialectPostgres, cfg.DSN)
}

// NewSQLite abre (ou cria) o arquivo SQLite e aplica as migrações pendentes
func NewSQLite(ctx context.Context, path string) (*Connection, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqldb: criar diretório do banco: %w", err)
	}
	return open(ctx, DialectSQLite, "file:"+path+"?_pragma=busy_timeout(5000)")
}

func open(ctx context.Context, dialect, dsn string) (*Connection, error) {
	db, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if dialect == DialectSQLite {
		// SQLite aceita um único escritor por vez
		db.SetMaxOpenConns(1)
	}

	conn := &Connection{DB: db, dialect: dialect, dsn: dsn}
	if err := RunMigrations(dialect, dsn); err != nil {
		db.Close()
		return nil, err
	}

	return conn, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Connection) Dialect() string {
	return c.dialect
}

// Placeholder retorna o formato de parâmetros do dialeto para o squirrel
func (c *Connection) Placeholder() squirrel.PlaceholderFormat {
	if c.dialect == DialectPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

// RunInTransaction executa fn em uma transação, desfazendo tudo em caso de erro ou panic
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}
