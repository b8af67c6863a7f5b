package services

import (
	"sort"
	"strings"

	"github.com/sahilchouksey/classtrack/model"
)

// FilterOptions narrows an assignment collection. Zero values mean "no
// restriction" for their criterion; set criteria compose with logical AND.
type FilterOptions struct {
	CourseID uint   // exact match when non-zero
	Status   string // "completed" or "incomplete"; anything else is ignored
	Search   string // case-insensitive substring across title, description, course name/code
}

// Filter returns the subset of assignments matching every set criterion.
// The input slice is never mutated.
func Filter(assignments []model.AssignmentView, opts FilterOptions) []model.AssignmentView {
	out := make([]model.AssignmentView, 0, len(assignments))
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	for _, a := range assignments {
		if opts.CourseID != 0 && a.CourseID != opts.CourseID {
			continue
		}
		switch opts.Status {
		case "completed":
			if !a.Completed {
				continue
			}
		case "incomplete":
			if a.Completed {
				continue
			}
		}
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// matchesSearch checks the lowercased needle against title, description and
// the associated course name/code; any single match qualifies.
func matchesSearch(a model.AssignmentView, needle string) bool {
	for _, field := range []string{a.Title, a.Description, a.CourseName, a.CourseCode} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Sort keys accepted by SortBy. Due date is the default.
const (
	SortByDueDate  = "dueDate"
	SortByPriority = "priority"
	SortByPoints   = "points"
)

// SortBy orders assignments by the given key: due date ascending (default),
// priority rank ascending, or points descending. Sorting is stable so
// equal-key elements keep their relative input order.
func SortBy(assignments []model.AssignmentView, key string) []model.AssignmentView {
	out := make([]model.AssignmentView, len(assignments))
	copy(out, assignments)

	switch key {
	case SortByPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	case SortByPoints:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Points > out[j].Points
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return CalendarDate(out[i].DueDate).Before(CalendarDate(out[j].DueDate))
		})
	}
	return out
}
