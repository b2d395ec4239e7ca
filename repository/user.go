package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/178inaba/duty-attendance/entity"
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (int, error) {
	query, args, err := sq.
		Insert("users").
		Columns(
			"username",
			"password_hash",
		).
		Values(
			username,
			passwordHash,
		).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql: %w", err)
	}

	return insert(ctx, r.db, query, args)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	b := sq.
		Select(
			"id",
			"username",
			"password_hash",
		).
		From("users").
		Where(sq.Eq{"username": username})

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql: %w", err)
	}

	var u entity.User
	if err := r.db.GetContext(ctx, &u, query, args...); errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}

	return &u, nil
}

func insert(ctx context.Context, db *sqlx.DB, query string, args []interface{}) (int, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("exec: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	return int(id), nil
}
