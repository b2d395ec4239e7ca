package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/178inaba/duty-attendance/entity"
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Dates are written as plain calendar strings so the driver's location
// cannot shift them to a neighbouring day.
const dateLayout = "2006-01-02"

type AttendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(ctx context.Context, staffID, dutyPostID int, date time.Time, status entity.AttendanceStatus) (int, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("invalid status %q", status)
	}

	query, args, err := sq.
		Insert("attendances").
		Columns(
			"staff_id",
			"duty_post_id",
			"date",
			"status",
		).
		Values(
			staffID,
			dutyPostID,
			date.Format(dateLayout),
			string(status),
		).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql: %w", err)
	}

	return insert(ctx, r.db, query, args)
}

func (r *AttendanceRepository) ListByUserID(ctx context.Context, userID int) ([]*entity.AttendanceDetail, error) {
	return r.listDetails(ctx, sq.Eq{"s.user_id": userID})
}

func (r *AttendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]*entity.AttendanceDetail, error) {
	return r.listDetails(ctx, sq.Eq{"a.date": date.Format(dateLayout)})
}

func (r *AttendanceRepository) listDetails(ctx context.Context, pred sq.Sqlizer) ([]*entity.AttendanceDetail, error) {
	b := sq.
		Select(
			"a.id",
			"a.staff_id",
			"a.duty_post_id",
			"a.date",
			"a.status",
			"dp.name AS duty_post_name",
			"u.username",
		).
		From("attendances a").
		Join("staffs s ON s.id = a.staff_id").
		Join("duty_posts dp ON dp.id = a.duty_post_id").
		Join("users u ON u.id = s.user_id").
		Where(pred).
		OrderBy("a.id")

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql: %w", err)
	}

	var ads []*entity.AttendanceDetail
	if err := r.db.SelectContext(ctx, &ads, query, args...); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	return ads, nil
}
