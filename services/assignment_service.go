package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sahilchouksey/classtrack/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// weekWindowDays is the lookahead of the "due this week" view.
const weekWindowDays = 7

// AssignmentService owns assignment CRUD, completion toggling and the audit
// history appended atomically with every mutation.
type AssignmentService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAssignmentService creates a new assignment service using the process clock.
func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db, now: time.Now}
}

// WithClock replaces the clock, used by tests to pin "today".
func (s *AssignmentService) WithClock(now func() time.Time) *AssignmentService {
	s.now = now
	return s
}

// AssignmentInput carries the writable assignment fields. DueDate is a bare
// calendar date in 2006-01-02 form. Points defaults to 0 when omitted or
// negative.
type AssignmentInput struct {
	CourseID    uint   `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Points      *int   `json:"points"`
}

// parsed is the validated form of an AssignmentInput.
type parsedAssignmentInput struct {
	courseID    uint
	title       string
	description string
	dueDate     time.Time
	priority    model.Priority
	points      int
}

func (in *AssignmentInput) validate() (*parsedAssignmentInput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, NewValidationError("title", "title is required")
	}
	if in.CourseID == 0 {
		return nil, NewValidationError("course_id", "course_id is required")
	}

	dueDate, err := time.Parse("2006-01-02", in.DueDate)
	if err != nil {
		return nil, NewValidationError("due_date", "due_date must be a valid date in YYYY-MM-DD form")
	}

	priority := model.Priority(strings.ToLower(strings.TrimSpace(in.Priority)))
	if !priority.Valid() {
		return nil, NewValidationError("priority", "priority must be one of high, medium, low")
	}

	points := 0
	if in.Points != nil && *in.Points > 0 {
		points = *in.Points
	}

	return &parsedAssignmentInput{
		courseID:    in.CourseID,
		title:       title,
		description: strings.TrimSpace(in.Description),
		dueDate:     CalendarDate(dueDate),
		priority:    priority,
		points:      points,
	}, nil
}

// jsonValue encodes a field value for an audit row.
func jsonValue(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(b)
}

// Create validates the input, verifies the referenced course exists and
// inserts the assignment together with its "created" audit row in one
// transaction. New assignments always start incomplete.
func (s *AssignmentService) Create(ctx context.Context, in AssignmentInput) (*model.Assignment, error) {
	parsed, err := in.validate()
	if err != nil {
		return nil, err
	}

	var assignment model.Assignment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course model.Course
		if err := tx.First(&course, parsed.courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("course", parsed.courseID)
			}
			return fmt.Errorf("verify course: %w", err)
		}

		assignment = model.Assignment{
			CourseID:    parsed.courseID,
			Title:       parsed.title,
			Description: parsed.description,
			DueDate:     parsed.dueDate,
			Priority:    parsed.priority,
			Points:      parsed.points,
			Completed:   false,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return fmt.Errorf("create assignment: %w", err)
		}

		entry := model.HistoryEntry{
			AssignmentID: assignment.ID,
			Field:        "created",
			OldValue:     jsonValue(nil),
			NewValue:     jsonValue(assignment.Title),
			ChangedAt:    s.now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		if IsNotFound(err) || IsValidation(err) {
			return nil, err
		}
		return nil, &IntegrityError{Op: "create assignment", Err: err}
	}
	return &assignment, nil
}

// Update revalidates the input and overwrites the assignment, appending one
// audit row per changed field in the same transaction.
func (s *AssignmentService) Update(ctx context.Context, id uint, in AssignmentInput) (*model.Assignment, error) {
	parsed, err := in.validate()
	if err != nil {
		return nil, err
	}

	var assignment model.Assignment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("assignment", id)
			}
			return fmt.Errorf("fetch assignment: %w", err)
		}

		if parsed.courseID != assignment.CourseID {
			var course model.Course
			if err := tx.First(&course, parsed.courseID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NewNotFoundError("course", parsed.courseID)
				}
				return fmt.Errorf("verify course: %w", err)
			}
		}

		changedAt := s.now()
		var entries []model.HistoryEntry
		record := func(field string, oldVal, newVal interface{}) {
			entries = append(entries, model.HistoryEntry{
				AssignmentID: assignment.ID,
				Field:        field,
				OldValue:     jsonValue(oldVal),
				NewValue:     jsonValue(newVal),
				ChangedAt:    changedAt,
			})
		}

		if assignment.Title != parsed.title {
			record("title", assignment.Title, parsed.title)
			assignment.Title = parsed.title
		}
		if assignment.Description != parsed.description {
			record("description", assignment.Description, parsed.description)
			assignment.Description = parsed.description
		}
		if !CalendarDate(assignment.DueDate).Equal(parsed.dueDate) {
			record("due_date",
				CalendarDate(assignment.DueDate).Format("2006-01-02"),
				parsed.dueDate.Format("2006-01-02"))
			assignment.DueDate = parsed.dueDate
		}
		if assignment.Priority != parsed.priority {
			record("priority", assignment.Priority, parsed.priority)
			assignment.Priority = parsed.priority
		}
		if assignment.Points != parsed.points {
			record("points", assignment.Points, parsed.points)
			assignment.Points = parsed.points
		}
		if assignment.CourseID != parsed.courseID {
			record("course_id", assignment.CourseID, parsed.courseID)
			assignment.CourseID = parsed.courseID
		}

		if len(entries) == 0 {
			return nil
		}

		if err := tx.Save(&assignment).Error; err != nil {
			return fmt.Errorf("update assignment: %w", err)
		}
		// Insert rows one at a time: batched inserts scramble the JSON
		// expression values the old/new columns carry.
		for i := range entries {
			if err := tx.Create(&entries[i]).Error; err != nil {
				return fmt.Errorf("append history: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if IsNotFound(err) || IsValidation(err) {
			return nil, err
		}
		return nil, &IntegrityError{Op: "update assignment", Err: err}
	}
	return &assignment, nil
}

// ToggleComplete flips the completed flag, setting CompletedAt when the
// assignment becomes complete and clearing it on the way back. Every toggle
// appends one audit row, so a double toggle restores the flag and leaves two
// entries behind.
func (s *AssignmentService) ToggleComplete(ctx context.Context, id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("assignment", id)
			}
			return fmt.Errorf("fetch assignment: %w", err)
		}

		now := s.now()
		wasCompleted := assignment.Completed
		assignment.Completed = !wasCompleted
		if assignment.Completed {
			assignment.CompletedAt = &now
		} else {
			assignment.CompletedAt = nil
		}

		// Save won't write a nil CompletedAt, so update the columns explicitly.
		updates := map[string]interface{}{
			"completed":    assignment.Completed,
			"completed_at": assignment.CompletedAt,
		}
		if err := tx.Model(&assignment).Updates(updates).Error; err != nil {
			return fmt.Errorf("toggle completion: %w", err)
		}

		entry := model.HistoryEntry{
			AssignmentID: assignment.ID,
			Field:        "completed",
			OldValue:     jsonValue(wasCompleted),
			NewValue:     jsonValue(assignment.Completed),
			ChangedAt:    now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, &IntegrityError{Op: "toggle assignment completion", Err: err}
	}
	return &assignment, nil
}

// Delete removes an assignment and its history entries in one transaction.
func (s *AssignmentService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assignment model.Assignment
		if err := tx.First(&assignment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("assignment", id)
			}
			return fmt.Errorf("fetch assignment: %w", err)
		}

		if err := tx.Where("assignment_id = ?", id).
			Delete(&model.HistoryEntry{}).Error; err != nil {
			return fmt.Errorf("delete history: %w", err)
		}
		if err := tx.Delete(&assignment).Error; err != nil {
			return fmt.Errorf("delete assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		if IsNotFound(err) {
			return err
		}
		return &IntegrityError{Op: "delete assignment", Err: err}
	}
	return nil
}

// Get returns a single assignment by id.
func (s *AssignmentService) Get(ctx context.Context, id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := s.db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("assignment", id)
		}
		return nil, &StoreError{Op: "fetch assignment", Err: err}
	}
	return &assignment, nil
}

// List returns every assignment decorated with course fields and derived
// flags, filtered and sorted by the shared query rules. An empty sort key
// orders by due date.
func (s *AssignmentService) List(ctx context.Context, opts FilterOptions, sortKey string) ([]model.AssignmentView, error) {
	views, err := s.loadViews(ctx)
	if err != nil {
		return nil, err
	}
	return SortBy(Filter(views, opts), sortKey), nil
}

// ListDueThisWeek returns incomplete assignments due within the next seven
// days (today inclusive), ordered by due date.
func (s *AssignmentService) ListDueThisWeek(ctx context.Context) ([]model.AssignmentView, error) {
	views, err := s.loadViews(ctx)
	if err != nil {
		return nil, err
	}

	week := make([]model.AssignmentView, 0, len(views))
	for _, v := range views {
		if v.Completed {
			continue
		}
		if v.DaysUntilDue >= 0 && v.DaysUntilDue <= weekWindowDays {
			week = append(week, v)
		}
	}
	return SortBy(week, SortByDueDate), nil
}

// History returns the audit trail of one assignment, oldest first.
func (s *AssignmentService) History(ctx context.Context, id uint) ([]model.HistoryEntry, error) {
	var assignment model.Assignment
	if err := s.db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("assignment", id)
		}
		return nil, &StoreError{Op: "fetch assignment", Err: err}
	}

	var entries []model.HistoryEntry
	if err := s.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Order("changed_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, &StoreError{Op: "list history", Err: err}
	}
	return entries, nil
}

func (s *AssignmentService) loadViews(ctx context.Context) ([]model.AssignmentView, error) {
	var assignments []model.Assignment
	if err := s.db.WithContext(ctx).
		Preload("Course").
		Order("due_date ASC").
		Find(&assignments).Error; err != nil {
		return nil, &StoreError{Op: "list assignments", Err: err}
	}

	now := s.now()
	views := make([]model.AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		course := a.Course
		a.Course = model.Course{}
		views = append(views, DeriveView(a, course, now))
	}
	return views, nil
}
