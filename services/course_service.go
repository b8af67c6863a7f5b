package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sahilchouksey/classtrack/model"
	"gorm.io/gorm"
)

// CourseService owns course CRUD and the cascading delete of a course's
// assignments and their history.
type CourseService struct {
	db *gorm.DB
}

// NewCourseService creates a new course service.
func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

// CourseInput carries the writable course fields.
type CourseInput struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Color    string `json:"color"`
	Credits  int    `json:"credits"`
	Semester string `json:"semester"`
}

func (in *CourseInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Color = strings.TrimSpace(in.Color)
	in.Semester = strings.TrimSpace(in.Semester)

	if in.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if in.Code == "" {
		return NewValidationError("code", "code is required")
	}
	if in.Color == "" {
		return NewValidationError("color", "color is required")
	}
	if in.Credits < 0 {
		return NewValidationError("credits", "credits must be a non-negative integer")
	}
	if in.Semester == "" {
		return NewValidationError("semester", "semester is required")
	}
	return nil
}

// Create validates the input and inserts a new course.
func (s *CourseService) Create(ctx context.Context, in CourseInput) (*model.Course, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	course := model.Course{
		Name:     in.Name,
		Code:     in.Code,
		Color:    in.Color,
		Credits:  in.Credits,
		Semester: in.Semester,
	}
	if err := s.db.WithContext(ctx).Create(&course).Error; err != nil {
		return nil, &StoreError{Op: "create course", Err: err}
	}
	return &course, nil
}

// Update validates the input and overwrites the writable fields of an
// existing course.
func (s *CourseService) Update(ctx context.Context, id uint, in CourseInput) (*model.Course, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var course model.Course
	if err := s.db.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("course", id)
		}
		return nil, &StoreError{Op: "fetch course", Err: err}
	}

	course.Name = in.Name
	course.Code = in.Code
	course.Color = in.Color
	course.Credits = in.Credits
	course.Semester = in.Semester

	if err := s.db.WithContext(ctx).Save(&course).Error; err != nil {
		return nil, &StoreError{Op: "update course", Err: err}
	}
	return &course, nil
}

// Delete removes a course together with every assignment referencing it and
// those assignments' history entries. The cascade is explicit and two-phase
// (children before parent) inside a single transaction, so it works the same
// on drivers without native cascade support.
func (s *CourseService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course model.Course
		if err := tx.First(&course, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("course", id)
			}
			return fmt.Errorf("fetch course: %w", err)
		}

		var assignmentIDs []uint
		if err := tx.Model(&model.Assignment{}).
			Where("course_id = ?", id).
			Pluck("id", &assignmentIDs).Error; err != nil {
			return fmt.Errorf("collect assignment ids: %w", err)
		}

		if len(assignmentIDs) > 0 {
			if err := tx.Where("assignment_id IN ?", assignmentIDs).
				Delete(&model.HistoryEntry{}).Error; err != nil {
				return fmt.Errorf("delete assignment history: %w", err)
			}
			if err := tx.Where("course_id = ?", id).
				Delete(&model.Assignment{}).Error; err != nil {
				return fmt.Errorf("delete assignments: %w", err)
			}
		}

		if err := tx.Delete(&course).Error; err != nil {
			return fmt.Errorf("delete course: %w", err)
		}
		return nil
	})
	if err != nil {
		if IsNotFound(err) {
			return err
		}
		return &IntegrityError{Op: "delete course cascade", Err: err}
	}
	return nil
}

// Get returns a single course by id.
func (s *CourseService) Get(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	if err := s.db.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("course", id)
		}
		return nil, &StoreError{Op: "fetch course", Err: err}
	}
	return &course, nil
}

// List returns all non-archived courses with their assignment counts and
// completion progress, ordered by name.
func (s *CourseService) List(ctx context.Context) ([]model.CourseSummary, error) {
	// Both snapshots come from one transaction so a concurrent delete
	// cannot pair a stale course list with fresh counts.
	var courses []model.Course
	var assignments []model.Assignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("archived = ?", false).
			Order("name ASC").
			Find(&courses).Error; err != nil {
			return fmt.Errorf("list courses: %w", err)
		}
		if err := tx.Find(&assignments).Error; err != nil {
			return fmt.Errorf("list assignments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, &StoreError{Op: "list course summaries", Err: err}
	}

	type tally struct {
		total     int64
		completed int64
	}
	counts := make(map[uint]tally, len(courses))
	for _, a := range assignments {
		t := counts[a.CourseID]
		t.total++
		if a.Completed {
			t.completed++
		}
		counts[a.CourseID] = t
	}

	summaries := make([]model.CourseSummary, 0, len(courses))
	for _, c := range courses {
		t := counts[c.ID]
		var progress float64
		if t.total > 0 {
			progress = math.Round(float64(t.completed)/float64(t.total)*1000) / 10
		}
		summaries = append(summaries, model.CourseSummary{
			Course:               c,
			TotalAssignments:     t.total,
			CompletedAssignments: t.completed,
			Progress:             progress,
		})
	}
	return summaries, nil
}
