package entity

import "testing"

func TestAttendanceStatus_Valid(t *testing.T) {
	for _, s := range []AttendanceStatus{AttendanceStatusPresent, AttendanceStatusAbsent} {
		if !s.Valid() {
			t.Fatalf("%q should be valid.", s)
		}
	}
	for _, s := range []AttendanceStatus{"", "present", "Late"} {
		if s.Valid() {
			t.Fatalf("%q should not be valid.", s)
		}
	}
}
