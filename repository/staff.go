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

type StaffRepository struct {
	db *sqlx.DB
}

func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, userID int, position string) (int, error) {
	query, args, err := sq.
		Insert("staffs").
		Columns(
			"user_id",
			"position",
		).
		Values(
			userID,
			position,
		).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql: %w", err)
	}

	return insert(ctx, r.db, query, args)
}

func (r *StaffRepository) GetByUserID(ctx context.Context, userID int) (*entity.Staff, error) {
	b := sq.
		Select(
			"id",
			"user_id",
			"position",
		).
		From("staffs").
		Where(sq.Eq{"user_id": userID})

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql: %w", err)
	}

	var s entity.Staff
	if err := r.db.GetContext(ctx, &s, query, args...); errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}

	return &s, nil
}
