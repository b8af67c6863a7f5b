package services

import (
	"testing"
	"time"

	"github.com/sahilchouksey/classtrack/model"
)

func testViews() []model.AssignmentView {
	mk := func(id, courseID uint, title, courseName string, priority model.Priority, points int, completed bool, due time.Time) model.AssignmentView {
		return model.AssignmentView{
			Assignment: model.Assignment{
				ID:        id,
				CourseID:  courseID,
				Title:     title,
				Priority:  priority,
				Points:    points,
				Completed: completed,
				DueDate:   due,
			},
			CourseName: courseName,
			CourseCode: "C" + courseName,
		}
	}
	return []model.AssignmentView{
		mk(1, 1, "Essay draft", "History", model.PriorityMedium, 50, false, date(2024, time.January, 10)),
		mk(2, 2, "Lab report", "Chemistry", model.PriorityHigh, 100, true, date(2024, time.January, 8)),
		mk(3, 1, "Reading quiz", "History", model.PriorityLow, 20, false, date(2024, time.January, 12)),
		mk(4, 2, "Final exam", "Chemistry", model.PriorityHigh, 200, false, date(2024, time.January, 8)),
	}
}

func ids(views []model.AssignmentView) []uint {
	out := make([]uint, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}

func equalIDs(a []uint, b ...uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterByStatus(t *testing.T) {
	views := testViews()

	completed := Filter(views, FilterOptions{Status: "completed"})
	if !equalIDs(ids(completed), 2) {
		t.Errorf("completed filter returned %v, want [2]", ids(completed))
	}

	incomplete := Filter(views, FilterOptions{Status: "incomplete"})
	if !equalIDs(ids(incomplete), 1, 3, 4) {
		t.Errorf("incomplete filter returned %v, want [1 3 4]", ids(incomplete))
	}

	// Unknown status applies no restriction.
	all := Filter(views, FilterOptions{Status: "whatever"})
	if len(all) != len(views) {
		t.Errorf("unknown status restricted to %d items", len(all))
	}
}

func TestFilterComposesWithAND(t *testing.T) {
	views := testViews()

	got := Filter(views, FilterOptions{CourseID: 2, Status: "incomplete"})
	if !equalIDs(ids(got), 4) {
		t.Errorf("courseID+status filter returned %v, want [4]", ids(got))
	}
}

func TestFilterSearchAcrossFields(t *testing.T) {
	views := testViews()

	// Title match, case-insensitive.
	if got := Filter(views, FilterOptions{Search: "LAB"}); !equalIDs(ids(got), 2) {
		t.Errorf("title search returned %v, want [2]", ids(got))
	}

	// Course name match qualifies too.
	if got := Filter(views, FilterOptions{Search: "chem"}); !equalIDs(ids(got), 2, 4) {
		t.Errorf("course search returned %v, want [2 4]", ids(got))
	}

	// Empty search = no restriction.
	if got := Filter(views, FilterOptions{Search: "  "}); len(got) != len(views) {
		t.Errorf("blank search restricted to %d items", len(got))
	}
}

func TestSortByPriorityIsStableAndOrdered(t *testing.T) {
	views := testViews()

	got := SortBy(views, SortByPriority)
	if !equalIDs(ids(got), 2, 4, 1, 3) {
		t.Errorf("priority sort returned %v, want [2 4 1 3]", ids(got))
	}

	// All high before all medium before all low.
	lastRank := 0
	for _, v := range got {
		if v.Priority.Rank() < lastRank {
			t.Fatalf("priority order violated at id %d", v.ID)
		}
		lastRank = v.Priority.Rank()
	}

	// Input order untouched.
	if !equalIDs(ids(views), 1, 2, 3, 4) {
		t.Error("SortBy mutated its input")
	}
}

func TestSortByDueDateStable(t *testing.T) {
	views := testViews()

	got := SortBy(views, SortByDueDate)
	// Ids 2 and 4 share a due date; their relative input order must hold.
	if !equalIDs(ids(got), 2, 4, 1, 3) {
		t.Errorf("due date sort returned %v, want [2 4 1 3]", ids(got))
	}

	// Unknown key falls back to due date.
	fallback := SortBy(views, "bogus")
	if !equalIDs(ids(fallback), ids(got)...) {
		t.Errorf("fallback sort returned %v, want %v", ids(fallback), ids(got))
	}
}

func TestSortByPointsDescending(t *testing.T) {
	views := testViews()

	got := SortBy(views, SortByPoints)
	if !equalIDs(ids(got), 4, 2, 1, 3) {
		t.Errorf("points sort returned %v, want [4 2 1 3]", ids(got))
	}
}
