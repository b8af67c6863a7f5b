package model

import (
	"time"
)

// Course represents a tracked academic subject (e.g., "Applied Programming")
type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"not null" json:"name"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"` // normalized upper, e.g. "CSE 310"
	Color     string    `gorm:"not null" json:"color"`            // hex color token used by charts/lists
	Credits   int       `gorm:"not null;default:0" json:"credits"`
	Semester  string    `gorm:"not null" json:"semester"`
	Archived  bool      `gorm:"not null;default:false" json:"archived"`

	// Relationships
	Assignments []Assignment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}

// CourseSummary is the list-view shape: a course with assignment counts and
// completion progress computed from its current assignment set.
type CourseSummary struct {
	Course
	TotalAssignments     int64   `json:"total_assignments"`
	CompletedAssignments int64   `json:"completed_assignments"`
	Progress             float64 `json:"progress"` // percent, one decimal
}
