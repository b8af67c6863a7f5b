package model

import (
	"time"
)

// CronJobLog represents one execution of a background maintenance job.
type CronJobLog struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	RunID       string     `gorm:"type:varchar(36);not null;uniqueIndex" json:"run_id"`
	JobName     string     `gorm:"type:varchar(100);not null;index" json:"job_name"`
	Status      string     `gorm:"type:varchar(20);not null" json:"status"` // started, completed, failed
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Message     string     `gorm:"type:text" json:"message"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for CronJobLog
func (CronJobLog) TableName() string {
	return "cron_job_logs"
}
