package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/178inaba/duty-attendance/entity"
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var ErrEmptyDutyPostName = errors.New("duty post name is empty")

type DutyPostRepository struct {
	db *sqlx.DB
}

func NewDutyPostRepository(db *sqlx.DB) *DutyPostRepository {
	return &DutyPostRepository{db: db}
}

func (r *DutyPostRepository) Create(ctx context.Context, name, description string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrEmptyDutyPostName
	}

	query, args, err := sq.
		Insert("duty_posts").
		Columns(
			"name",
			"description",
		).
		Values(
			name,
			description,
		).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql: %w", err)
	}

	return insert(ctx, r.db, query, args)
}

func (r *DutyPostRepository) Get(ctx context.Context, id int) (*entity.DutyPost, error) {
	b := sq.
		Select(
			"id",
			"name",
			"description",
		).
		From("duty_posts").
		Where(sq.Eq{"id": id})

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql: %w", err)
	}

	var dp entity.DutyPost
	if err := r.db.GetContext(ctx, &dp, query, args...); errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}

	return &dp, nil
}

func (r *DutyPostRepository) List(ctx context.Context) ([]*entity.DutyPost, error) {
	b := sq.
		Select(
			"id",
			"name",
			"description",
		).
		From("duty_posts").
		OrderBy("id")

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql: %w", err)
	}

	var dps []*entity.DutyPost
	if err := r.db.SelectContext(ctx, &dps, query, args...); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	return dps, nil
}
