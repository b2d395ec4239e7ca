package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/178inaba/duty-attendance/auth"
	"github.com/178inaba/duty-attendance/entity"
	"github.com/178inaba/duty-attendance/view"
)

// fakeStore implements every repository interface in memory.
type fakeStore struct {
	users       []*entity.User
	staffs      []*entity.Staff
	dutyPosts   []*entity.DutyPost
	attendances []*entity.Attendance
	calls       int
}

func (s *fakeStore) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	s.calls++
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetByUserID(_ context.Context, userID int) (*entity.Staff, error) {
	s.calls++
	for _, st := range s.staffs {
		if st.UserID == userID {
			return st, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) Get(_ context.Context, id int) (*entity.DutyPost, error) {
	s.calls++
	for _, dp := range s.dutyPosts {
		if dp.ID == id {
			return dp, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) List(context.Context) ([]*entity.DutyPost, error) {
	s.calls++
	return s.dutyPosts, nil
}

func (s *fakeStore) Create(_ context.Context, staffID, dutyPostID int, date time.Time, status entity.AttendanceStatus) (int, error) {
	s.calls++
	a := &entity.Attendance{
		ID:         len(s.attendances) + 1,
		StaffID:    staffID,
		DutyPostID: dutyPostID,
		Date:       date,
		Status:     status,
	}
	s.attendances = append(s.attendances, a)
	return a.ID, nil
}

func (s *fakeStore) ListByUserID(_ context.Context, userID int) ([]*entity.AttendanceDetail, error) {
	s.calls++
	return s.details(func(a *entity.Attendance) bool {
		st := s.staff(a.StaffID)
		return st != nil && st.UserID == userID
	}), nil
}

func (s *fakeStore) ListByDate(_ context.Context, date time.Time) ([]*entity.AttendanceDetail, error) {
	s.calls++
	return s.details(func(a *entity.Attendance) bool {
		return a.Date.Format("2006-01-02") == date.Format("2006-01-02")
	}), nil
}

func (s *fakeStore) details(match func(*entity.Attendance) bool) []*entity.AttendanceDetail {
	var ads []*entity.AttendanceDetail
	for _, a := range s.attendances {
		if !match(a) {
			continue
		}
		ad := &entity.AttendanceDetail{Attendance: *a}
		for _, dp := range s.dutyPosts {
			if dp.ID == a.DutyPostID {
				ad.DutyPostName = dp.Name
			}
		}
		if st := s.staff(a.StaffID); st != nil {
			for _, u := range s.users {
				if u.ID == st.UserID {
					ad.Username = u.Username
				}
			}
		}
		ads = append(ads, ad)
	}
	return ads
}

func (s *fakeStore) staff(id int) *entity.Staff {
	for _, st := range s.staffs {
		if st.ID == id {
			return st
		}
	}
	return nil
}

type fakeNotifier struct {
	marked  int
	rosters []string
}

func (n *fakeNotifier) AttendanceMarked(context.Context, string, *entity.DutyPost, *entity.Attendance) error {
	n.marked++
	return nil
}

func (n *fakeNotifier) PostRoster(_ context.Context, channel string, _ time.Time, _ []*entity.AttendanceDetail) error {
	n.rosters = append(n.rosters, channel)
	return nil
}

const testSessionSecret = "test-secret"

var (
	alice = entity.Identity{UserID: 1, Username: "alice"}
	bob   = entity.Identity{UserID: 2, Username: "bob"}
	carol = entity.Identity{UserID: 3, Username: "carol"}
)

// newTestHandler returns a handler over a store where alice and bob are staff,
// carol has no staff record and two duty posts exist.
func newTestHandler(t *testing.T) (*Handler, *fakeStore, *fakeNotifier) {
	t.Helper()

	hash, err := auth.HashPassword("password")
	if err != nil {
		t.Fatalf("Hash password: %v.", err)
	}
	s := &fakeStore{
		users: []*entity.User{
			{ID: alice.UserID, Username: alice.Username, PasswordHash: hash},
			{ID: bob.UserID, Username: bob.Username, PasswordHash: hash},
			{ID: carol.UserID, Username: carol.Username, PasswordHash: hash},
		},
		staffs: []*entity.Staff{
			{ID: 11, UserID: alice.UserID, Position: "Guard"},
			{ID: 12, UserID: bob.UserID, Position: "Receptionist"},
		},
		dutyPosts: []*entity.DutyPost{
			{ID: 1, Name: "Gate A", Description: "north entrance"},
			{ID: 2, Name: "Lobby", Description: "main hall"},
		},
	}
	n := &fakeNotifier{}

	r, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("New renderer: %v.", err)
	}

	h := NewHandler(s, s, s, s, n, r, Options{
		SessionSecret:      testSessionSecret,
		SessionTTL:         time.Hour,
		Location:           time.UTC,
		SlackSigningSecret: "slack-secret",
	})
	h.now = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }

	return h, s, n
}

func sessionCookie(t *testing.T, ident entity.Identity) *http.Cookie {
	t.Helper()

	token, err := auth.NewSessionToken(testSessionSecret, time.Hour, ident, time.Now())
	if err != nil {
		t.Fatalf("New session token: %v.", err)
	}
	return &http.Cookie{Name: sessionCookieName, Value: token}
}
