package services

import (
	"time"

	"github.com/sahilchouksey/classtrack/model"
)

// dueSoonWindowDays is the inclusive number of days ahead within which an
// incomplete assignment counts as due soon.
const dueSoonWindowDays = 3

// CalendarDate truncates t to its calendar date in UTC. All due-date
// comparisons go through this so time-of-day and timezone never shift an
// assignment between "today" and "yesterday".
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntilDue returns the whole number of calendar days between now and the
// due date. Negative when the due date has passed.
func DaysUntilDue(dueDate, now time.Time) int {
	diff := CalendarDate(dueDate).Sub(CalendarDate(now))
	return int(diff.Hours() / 24)
}

// IsOverdue reports whether an assignment is overdue: never for completed
// assignments, otherwise when the due date is strictly before today.
func IsOverdue(dueDate time.Time, completed bool, now time.Time) bool {
	if completed {
		return false
	}
	return CalendarDate(dueDate).Before(CalendarDate(now))
}

// IsDueSoon reports whether an incomplete, not-overdue assignment is due
// within the next three days (today inclusive).
func IsDueSoon(dueDate time.Time, completed bool, now time.Time) bool {
	if completed || IsOverdue(dueDate, completed, now) {
		return false
	}
	days := DaysUntilDue(dueDate, now)
	return days >= 0 && days <= dueSoonWindowDays
}

// DeriveView decorates an assignment with its course display fields and the
// date-derived flags as of now.
func DeriveView(a model.Assignment, course model.Course, now time.Time) model.AssignmentView {
	return model.AssignmentView{
		Assignment:   a,
		CourseName:   course.Name,
		CourseCode:   course.Code,
		CourseColor:  course.Color,
		Overdue:      IsOverdue(a.DueDate, a.Completed, now),
		DueSoon:      IsDueSoon(a.DueDate, a.Completed, now),
		DaysUntilDue: DaysUntilDue(a.DueDate, now),
	}
}
