package services

import (
	"testing"
	"time"

	"github.com/sahilchouksey/classtrack/model"
)

func TestIsOverdue(t *testing.T) {
	now := date(2024, time.January, 15)

	tests := []struct {
		name      string
		dueDate   time.Time
		completed bool
		want      bool
	}{
		{"past due incomplete", date(2024, time.January, 10), false, true},
		{"past due completed", date(2024, time.January, 10), true, false},
		{"due today", date(2024, time.January, 15), false, false},
		{"due tomorrow", date(2024, time.January, 16), false, false},
		{"far future", date(2024, time.June, 1), false, false},
		{"completed far past", date(2020, time.January, 1), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverdue(tt.dueDate, tt.completed, now); got != tt.want {
				t.Errorf("IsOverdue(%v, %v) = %v, want %v", tt.dueDate, tt.completed, got, tt.want)
			}
		})
	}
}

func TestIsOverdueIgnoresTimeOfDay(t *testing.T) {
	// Due "yesterday" late at night is still overdue when now is early morning.
	now := time.Date(2024, time.January, 15, 0, 30, 0, 0, time.UTC)
	due := time.Date(2024, time.January, 14, 23, 59, 0, 0, time.UTC)

	if !IsOverdue(due, false, now) {
		t.Error("expected overdue when due date is the previous calendar day")
	}

	// Due later today is not overdue even if the clock time has passed.
	due = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	now = time.Date(2024, time.January, 15, 18, 0, 0, 0, time.UTC)
	if IsOverdue(due, false, now) {
		t.Error("expected not overdue when due date is today")
	}
}

func TestIsDueSoon(t *testing.T) {
	now := date(2024, time.January, 15)

	tests := []struct {
		name      string
		dueDate   time.Time
		completed bool
		want      bool
	}{
		{"due today", date(2024, time.January, 15), false, true},
		{"due in 3 days", date(2024, time.January, 18), false, true},
		{"due in 4 days", date(2024, time.January, 19), false, false},
		{"overdue", date(2024, time.January, 14), false, false},
		{"completed due today", date(2024, time.January, 15), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDueSoon(tt.dueDate, tt.completed, now); got != tt.want {
				t.Errorf("IsDueSoon(%v, %v) = %v, want %v", tt.dueDate, tt.completed, got, tt.want)
			}
		})
	}
}

// Due-soon implies not overdue and not completed, whatever the inputs.
func TestDueSoonExcludesOverdueAndCompleted(t *testing.T) {
	now := date(2024, time.March, 10)
	for days := -10; days <= 10; days++ {
		due := now.AddDate(0, 0, days)
		for _, completed := range []bool{true, false} {
			if IsDueSoon(due, completed, now) {
				if completed {
					t.Errorf("due soon with completed=true at offset %d", days)
				}
				if IsOverdue(due, completed, now) {
					t.Errorf("due soon and overdue at offset %d", days)
				}
			}
			if completed && IsOverdue(due, completed, now) {
				t.Errorf("completed assignment overdue at offset %d", days)
			}
		}
	}
}

func TestDaysUntilDue(t *testing.T) {
	now := date(2024, time.January, 15)

	if got := DaysUntilDue(date(2024, time.January, 15), now); got != 0 {
		t.Errorf("same day = %d, want 0", got)
	}
	if got := DaysUntilDue(date(2024, time.January, 20), now); got != 5 {
		t.Errorf("five days out = %d, want 5", got)
	}
	if got := DaysUntilDue(date(2024, time.January, 10), now); got != -5 {
		t.Errorf("five days past = %d, want -5", got)
	}
}

func TestPriorityRank(t *testing.T) {
	if model.PriorityHigh.Rank() >= model.PriorityMedium.Rank() {
		t.Error("high should rank before medium")
	}
	if model.PriorityMedium.Rank() >= model.PriorityLow.Rank() {
		t.Error("medium should rank before low")
	}
	if model.Priority("urgent").Valid() {
		t.Error("unknown priority must not validate")
	}
}
