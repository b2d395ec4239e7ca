package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/178inaba/duty-attendance/entity"
	"github.com/slack-go/slack"
)

type Slack struct {
	client  *slack.Client
	channel string
}

func NewSlack(client *slack.Client, channel string) *Slack {
	return &Slack{client: client, channel: channel}
}

func (s *Slack) AttendanceMarked(ctx context.Context, username string, dp *entity.DutyPost, a *entity.Attendance) error {
	text := fmt.Sprintf("%s marked %s at %s on %s.", username, a.Status, dp.Name, a.Date.Format("2006-01-02"))
	if _, _, err := s.client.PostMessageContext(ctx, s.channel, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("post message: %w", err)
	}

	return nil
}

func (s *Slack) PostRoster(ctx context.Context, channel string, date time.Time, ads []*entity.AttendanceDetail) error {
	if _, _, err := s.client.PostMessageContext(ctx, channel, slack.MsgOptionText(FormatRoster(date, ads), false)); err != nil {
		return fmt.Errorf("post message: %w", err)
	}

	return nil
}

// FormatRoster renders one line per attendance row of the day.
func FormatRoster(date time.Time, ads []*entity.AttendanceDetail) string {
	day := date.Format("2006-01-02")
	if len(ads) == 0 {
		return fmt.Sprintf("No attendance marked on %s.", day)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Attendance on %s:", day)
	for _, ad := range ads {
		fmt.Fprintf(&b, "\n- %s: %s (%s)", ad.Username, ad.DutyPostName, ad.Status)
	}

	return b.String()
}

// Nop is used when Slack is not configured.
type Nop struct{}

func (Nop) AttendanceMarked(context.Context, string, *entity.DutyPost, *entity.Attendance) error {
	return nil
}

func (Nop) PostRoster(context.Context, string, time.Time, []*entity.AttendanceDetail) error {
	return nil
}
