package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/chai-ledger/infrastructure/database/sqldb"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

const usersTable = "users"

// UserRepository guarda credenciais de acesso quando o backend é SQL
type UserRepository interface {
	GetCredential(ctx context.Context, username string) (*domain.Credential, error)
	SaveCredential(ctx context.Context, credential domain.Credential) error
	ListUsernames(ctx context.Context) ([]string, error)
}

type userRepository struct {
	conn sqldb.Conn
}

func NewUserRepository(conn sqldb.Conn) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

// GetCredential retorna nil quando o usuário não existe
func (r *userRepository) GetCredential(ctx context.Context, username string) (*domain.Credential, error) {
	query, args, err := squirrel.
		Select("username", "password_hash").
		From(usersTable).
		Where(squirrel.Eq{"username": username}).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, err
	}

	var credential domain.Credential
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&credential.Username, &credential.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao consultar usuário")
	}

	return &credential, nil
}

// SaveCredential espera a senha já com hash
func (r *userRepository) SaveCredential(ctx context.Context, credential domain.Credential) error {
	query, args, err := squirrel.
		Insert(usersTable).
		Columns("username", "password_hash").
		Values(credential.Username, credential.Password).
		Suffix("ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = CURRENT_TIMESTAMP").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao gravar usuário")
	}
	return nil
}

func (r *userRepository) ListUsernames(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("username").
		From(usersTable).
		OrderBy("username ASC").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar usuários")
	}
	defer rows.Close()

	usernames := make([]string, 0)
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		usernames = append(usernames, username)
	}
	return usernames, rows.Err()
}
