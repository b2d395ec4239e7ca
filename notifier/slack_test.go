package notifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/178inaba/duty-attendance/entity"
	"github.com/slack-go/slack"
)

func TestSlack_AttendanceMarked(t *testing.T) {
	var gotChannel, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("Parse form: %v.", err)
		}
		gotChannel = r.FormValue("channel")
		gotText = r.FormValue("text")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"channel":"C1","ts":"1.0"}`))
	}))
	t.Cleanup(srv.Close)

	s := NewSlack(slack.New("xoxb-test", slack.OptionAPIURL(srv.URL+"/")), "C1")
	a := &entity.Attendance{
		Date:   time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		Status: entity.AttendanceStatusPresent,
	}
	if err := s.AttendanceMarked(context.Background(), "alice", &entity.DutyPost{Name: "Gate A"}, a); err != nil {
		t.Fatalf("Should not be fail: %v.", err)
	}

	if got, want := gotChannel, "C1"; got != want {
		t.Fatalf("Channel is %q, but want %q.", got, want)
	}
	if got, want := gotText, "alice marked Present at Gate A on 2026-10-19."; got != want {
		t.Fatalf("Text is %q, but want %q.", got, want)
	}
}

func TestFormatRoster(t *testing.T) {
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	if got, want := FormatRoster(date, nil), "No attendance marked on 2026-10-19."; got != want {
		t.Fatalf("Roster is %q, but want %q.", got, want)
	}

	ads := []*entity.AttendanceDetail{
		{Attendance: entity.Attendance{Status: entity.AttendanceStatusPresent}, Username: "alice", DutyPostName: "Gate A"},
		{Attendance: entity.Attendance{Status: entity.AttendanceStatusPresent}, Username: "bob", DutyPostName: "Lobby"},
	}
	got := FormatRoster(date, ads)
	for _, line := range []string{"Attendance on 2026-10-19:", "- alice: Gate A (Present)", "- bob: Lobby (Present)"} {
		if !strings.Contains(got, line) {
			t.Fatalf("Roster %q does not contain %q.", got, line)
		}
	}
}
