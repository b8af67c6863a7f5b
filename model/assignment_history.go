package model

import (
	"time"

	"gorm.io/datatypes"
)

// HistoryEntry is one immutable audit record of a single field change on an
// assignment. Entries are append-only; they are removed only when the owning
// assignment is deleted (directly or via course cascade).
type HistoryEntry struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	AssignmentID uint           `gorm:"not null;index" json:"assignment_id"`
	Field        string         `gorm:"not null" json:"field"`
	OldValue     datatypes.JSON `json:"old_value"`
	NewValue     datatypes.JSON `json:"new_value"`
	ChangedAt    time.Time      `gorm:"not null" json:"changed_at"`

	Assignment Assignment `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the table name from the original schema.
func (HistoryEntry) TableName() string {
	return "assignment_history"
}
