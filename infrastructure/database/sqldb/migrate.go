package sqldb

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// RunMigrations aplica as migrações embutidas do dialeto.
// Usa uma conexão separada porque o driver do migrate fecha a conexão ao terminar.
func RunMigrations(dialect, dsn string) error {
	migrateDB, err := sql.Open(dialect, dsn)
	if err != nil {
		return fmt.Errorf("sqldb: abrir banco para migração: %w", err)
	}
	defer migrateDB.Close()

	var driver database.Driver
	switch dialect {
	case DialectPostgres:
		driver, err = postgres.WithInstance(migrateDB, &postgres.Config{})
	case DialectSQLite:
		driver, err = sqlite.WithInstance(migrateDB, &sqlite.Config{})
	default:
		return fmt.Errorf("sqldb: dialeto não suportado: %s", dialect)
	}
	if err != nil {
		return fmt.Errorf("sqldb: criar driver de migração: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+dialect)
	if err != nil {
		return fmt.Errorf("sqldb: ler migrações: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dialect, driver)
	if err != nil {
		return fmt.Errorf("sqldb: criar migrador: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("sqldb: aplicar migrações: %w", err)
	}

	return nil
}
