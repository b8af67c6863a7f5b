package services

import (
	"context"
	"testing"
	"time"

	"github.com/sahilchouksey/classtrack/model"
)

func TestCourseCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CourseInput
		field string
	}{
		{"missing name", CourseInput{Code: "CSE 310", Color: "#fff", Credits: 3, Semester: "Fall 2025"}, "name"},
		{"missing code", CourseInput{Name: "Programming", Color: "#fff", Credits: 3, Semester: "Fall 2025"}, "code"},
		{"missing color", CourseInput{Name: "Programming", Code: "CSE 310", Credits: 3, Semester: "Fall 2025"}, "color"},
		{"negative credits", CourseInput{Name: "Programming", Code: "CSE 310", Color: "#fff", Credits: -1, Semester: "Fall 2025"}, "credits"},
		{"missing semester", CourseInput{Name: "Programming", Code: "CSE 310", Color: "#fff", Credits: 3}, "semester"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	if n := countRows(t, db, &model.Course{}); n != 0 {
		t.Errorf("invalid inputs created %d courses", n)
	}
}

func TestCourseCreateNormalizesCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db)

	course, err := svc.Create(context.Background(), CourseInput{
		Name:     "Applied Programming",
		Code:     "cse 310",
		Color:    "#0062B8",
		Credits:  3,
		Semester: "Fall 2025",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if course.Code != "CSE 310" {
		t.Errorf("code = %q, want upper-cased %q", course.Code, "CSE 310")
	}
	if course.ID == 0 {
		t.Error("expected a store-assigned id")
	}
}

func TestCourseUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db)

	_, err := svc.Update(context.Background(), 999, CourseInput{
		Name: "X", Code: "X 1", Color: "#fff", Credits: 1, Semester: "Fall 2025",
	})
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCourseDeleteCascadesExactly(t *testing.T) {
	db := newTestDB(t)
	now := date(2024, time.January, 15)
	courses := NewCourseService(db)
	assignments := NewAssignmentService(db).WithClock(fixedClock(now))
	ctx := context.Background()

	courseA := mustCreateCourse(t, db, "History", "HIST 101")
	courseB := mustCreateCourse(t, db, "Chemistry", "CHEM 105")

	mk := func(courseID uint, title string) *model.Assignment {
		a, err := assignments.Create(ctx, AssignmentInput{
			CourseID: courseID,
			Title:    title,
			DueDate:  "2024-02-01",
			Priority: "medium",
		})
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		return a
	}

	aOne := mk(courseA.ID, "Essay")
	aTwo := mk(courseA.ID, "Quiz")
	bOne := mk(courseB.ID, "Lab report")

	// Give every assignment some history beyond the created entry.
	for _, a := range []*model.Assignment{aOne, aTwo, bOne} {
		if _, err := assignments.ToggleComplete(ctx, a.ID); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}

	if err := courses.Delete(ctx, courseA.ID); err != nil {
		t.Fatalf("delete course: %v", err)
	}

	// Course A, both its assignments and their history are gone.
	if _, err := courses.Get(ctx, courseA.ID); !IsNotFound(err) {
		t.Errorf("course A still present: %v", err)
	}
	for _, id := range []uint{aOne.ID, aTwo.ID} {
		if _, err := assignments.Get(ctx, id); !IsNotFound(err) {
			t.Errorf("assignment %d survived cascade", id)
		}
		var n int64
		db.Model(&model.HistoryEntry{}).Where("assignment_id = ?", id).Count(&n)
		if n != 0 {
			t.Errorf("assignment %d left %d history rows", id, n)
		}
	}

	// Course B and its assignment are untouched.
	if _, err := courses.Get(ctx, courseB.ID); err != nil {
		t.Errorf("course B affected by cascade: %v", err)
	}
	if _, err := assignments.Get(ctx, bOne.ID); err != nil {
		t.Errorf("assignment of course B affected: %v", err)
	}
	var n int64
	db.Model(&model.HistoryEntry{}).Where("assignment_id = ?", bOne.ID).Count(&n)
	if n != 2 {
		t.Errorf("course B assignment history rows = %d, want 2", n)
	}
}

func TestCourseDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db)

	if err := svc.Delete(context.Background(), 42); !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCourseListAggregates(t *testing.T) {
	db := newTestDB(t)
	now := date(2024, time.January, 15)
	courses := NewCourseService(db)
	assignments := NewAssignmentService(db).WithClock(fixedClock(now))
	ctx := context.Background()

	course := mustCreateCourse(t, db, "Statistics", "MATH 221")

	first, err := assignments.Create(ctx, AssignmentInput{
		CourseID: course.ID, Title: "Homework 1", DueDate: "2024-02-01", Priority: "low",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := assignments.Create(ctx, AssignmentInput{
		CourseID: course.ID, Title: "Homework 2", DueDate: "2024-02-08", Priority: "low",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := assignments.ToggleComplete(ctx, first.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	summaries, err := courses.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}
	s := summaries[0]
	if s.TotalAssignments != 2 || s.CompletedAssignments != 1 {
		t.Errorf("counts = %d/%d, want 2/1", s.TotalAssignments, s.CompletedAssignments)
	}
	if s.Progress != 50 {
		t.Errorf("progress = %v, want 50", s.Progress)
	}
}
