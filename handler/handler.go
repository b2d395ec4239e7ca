package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/178inaba/duty-attendance/entity"
)

var (
	ErrDutyPostNotFound = errors.New("duty post not found")
	ErrStaffUnlinked    = errors.New("identity has no staff record")
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

type StaffRepository interface {
	GetByUserID(ctx context.Context, userID int) (*entity.Staff, error)
}

type DutyPostRepository interface {
	Get(ctx context.Context, id int) (*entity.DutyPost, error)
	List(ctx context.Context) ([]*entity.DutyPost, error)
}

type AttendanceRepository interface {
	Create(ctx context.Context, staffID, dutyPostID int, date time.Time, status entity.AttendanceStatus) (int, error)
	ListByUserID(ctx context.Context, userID int) ([]*entity.AttendanceDetail, error)
	ListByDate(ctx context.Context, date time.Time) ([]*entity.AttendanceDetail, error)
}

type Notifier interface {
	AttendanceMarked(ctx context.Context, username string, dp *entity.DutyPost, a *entity.Attendance) error
	PostRoster(ctx context.Context, channel string, date time.Time, ads []*entity.AttendanceDetail) error
}

type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data map[string]interface{}) error
}

type Options struct {
	SessionSecret      string
	SessionTTL         time.Duration
	Location           *time.Location
	SlackSigningSecret string
	SecureCookie       bool
}

type Handler struct {
	userRepo       UserRepository
	staffRepo      StaffRepository
	dutyPostRepo   DutyPostRepository
	attendanceRepo AttendanceRepository
	notifier       Notifier
	renderer       Renderer
	opts           Options
	now            func() time.Time
}

func NewHandler(
	userRepo UserRepository,
	staffRepo StaffRepository,
	dutyPostRepo DutyPostRepository,
	attendanceRepo AttendanceRepository,
	notifier Notifier,
	renderer Renderer,
	opts Options,
) *Handler {
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &Handler{
		userRepo:       userRepo,
		staffRepo:      staffRepo,
		dutyPostRepo:   dutyPostRepo,
		attendanceRepo: attendanceRepo,
		notifier:       notifier,
		renderer:       renderer,
		opts:           opts,
		now:            time.Now,
	}
}

// ListAttendance returns the attendance rows of the identity's staff record.
func (h *Handler) ListAttendance(ctx context.Context, ident entity.Identity) ([]*entity.AttendanceDetail, error) {
	ads, err := h.attendanceRepo.ListByUserID(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("list attendance by user id: %w", err)
	}

	return ads, nil
}

// MarkAttendance records the identity as present at the duty post today.
// Every call inserts a new row.
func (h *Handler) MarkAttendance(ctx context.Context, ident entity.Identity, dutyPostID int) (*entity.Attendance, error) {
	dp, err := h.dutyPostRepo.Get(ctx, dutyPostID)
	if err != nil {
		return nil, fmt.Errorf("get duty post: %w", err)
	}
	if dp == nil {
		return nil, ErrDutyPostNotFound
	}

	s, err := h.staffRepo.GetByUserID(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("get staff by user id: %w", err)
	}
	if s == nil {
		return nil, ErrStaffUnlinked
	}

	a := &entity.Attendance{
		StaffID:    s.ID,
		DutyPostID: dp.ID,
		Date:       h.today(),
		Status:     entity.AttendanceStatusPresent,
	}
	id, err := h.attendanceRepo.Create(ctx, a.StaffID, a.DutyPostID, a.Date, a.Status)
	if err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}
	a.ID = id

	if err := h.notifier.AttendanceMarked(ctx, ident.Username, dp, a); err != nil {
		log.Printf("Notify attendance marked: %v.", err)
	}

	return a, nil
}

func (h *Handler) ListDutyPosts(ctx context.Context) ([]*entity.DutyPost, error) {
	dps, err := h.dutyPostRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list duty posts: %w", err)
	}

	return dps, nil
}

func (h *Handler) today() time.Time {
	y, m, d := h.now().In(h.opts.Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, h.opts.Location)
}
