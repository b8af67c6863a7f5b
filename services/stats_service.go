package services

import (
	"context"
	"math"
	"time"

	"github.com/sahilchouksey/classtrack/model"
	"gorm.io/gorm"
)

// Stats holds the derived figures for the whole assignment set. They are
// recomputed from the current snapshot on every request; nothing here is
// ever persisted or cached.
type Stats struct {
	Total              int64   `json:"total"`
	Completed          int64   `json:"completed"`
	Overdue            int64   `json:"overdue"`
	CompletionRate     int     `json:"completion_rate"` // percent, rounded
	TotalPoints        int64   `json:"total_points"`
	EarnedPoints       int64   `json:"earned_points"`
	AvgCompletedPoints float64 `json:"avg_completed_points"`
}

// ComputeStats derives statistics from an assignment snapshot as of now.
func ComputeStats(assignments []model.Assignment, now time.Time) Stats {
	var stats Stats
	for _, a := range assignments {
		stats.Total++
		stats.TotalPoints += int64(a.Points)
		if a.Completed {
			stats.Completed++
			stats.EarnedPoints += int64(a.Points)
		}
		if IsOverdue(a.DueDate, a.Completed, now) {
			stats.Overdue++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	if stats.Completed > 0 {
		avg := float64(stats.EarnedPoints) / float64(stats.Completed)
		stats.AvgCompletedPoints = math.Round(avg*100) / 100
	}
	return stats
}

// StatsService loads the current assignment snapshot and computes statistics.
type StatsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStatsService creates a new stats service using the process clock.
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db, now: time.Now}
}

// WithClock replaces the clock, used by tests to pin "today".
func (s *StatsService) WithClock(now func() time.Time) *StatsService {
	s.now = now
	return s
}

// Get recomputes statistics over the committed assignment snapshot.
func (s *StatsService) Get(ctx context.Context) (Stats, error) {
	var assignments []model.Assignment
	if err := s.db.WithContext(ctx).Find(&assignments).Error; err != nil {
		return Stats{}, &StoreError{Op: "load assignments for stats", Err: err}
	}
	return ComputeStats(assignments, s.now()), nil
}
