package entity

import "time"

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "Present"
	AttendanceStatusAbsent  AttendanceStatus = "Absent"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent:
		return true
	}
	return false
}

type DutyPost struct {
	ID          int    `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

type Attendance struct {
	ID         int              `db:"id"`
	StaffID    int              `db:"staff_id"`
	DutyPostID int              `db:"duty_post_id"`
	Date       time.Time        `db:"date"`
	Status     AttendanceStatus `db:"status"`
}

// AttendanceDetail is an attendance row joined with the names needed for display.
type AttendanceDetail struct {
	Attendance
	DutyPostName string `db:"duty_post_name"`
	Username     string `db:"username"`
}
