package model

import (
	"time"
)

// Priority is the urgency level of an assignment. Only the three listed
// values are valid; anything else is rejected at the request boundary.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank maps a priority to its sort order (lower = more urgent). The rank is
// derived on demand and never stored.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Valid reports whether p is one of the three known priority levels.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Assignment represents a gradable task belonging to exactly one course.
type Assignment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CourseID    uint       `gorm:"not null;index" json:"course_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     time.Time  `gorm:"type:date;not null" json:"due_date"` // calendar date, no time component
	Priority    Priority   `gorm:"type:varchar(10);not null" json:"priority"`
	Points      int        `gorm:"not null;default:0" json:"points"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`

	// Relationships
	Course  Course         `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	History []HistoryEntry `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE" json:"-"`
}

// AssignmentView is an assignment joined with course display fields plus the
// date-derived flags every UI surface needs.
type AssignmentView struct {
	Assignment
	CourseName   string `json:"course_name"`
	CourseCode   string `json:"course_code"`
	CourseColor  string `json:"course_color"`
	Overdue      bool   `json:"overdue"`
	DueSoon      bool   `json:"due_soon"`
	DaysUntilDue int    `json:"days_until_due"`
}
