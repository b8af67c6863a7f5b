package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/classtrack/model"
	"github.com/sahilchouksey/classtrack/services"
)

// jobLogRetention is how long cron run records are kept.
const jobLogRetention = 30 * 24 * time.Hour

// DueDigest logs how many assignments are overdue and due soon. It reads the
// domain tables but never mutates them; actual notification delivery is out
// of scope.
func (m *CronManager) DueDigest() (string, error) {
	var assignments []model.Assignment
	if err := m.db.Find(&assignments).Error; err != nil {
		return "", fmt.Errorf("load assignments: %w", err)
	}

	now := time.Now()
	overdue := 0
	dueSoon := 0
	for _, a := range assignments {
		if services.IsOverdue(a.DueDate, a.Completed, now) {
			overdue++
		}
		if services.IsDueSoon(a.DueDate, a.Completed, now) {
			dueSoon++
		}
	}

	message := fmt.Sprintf("%d overdue, %d due within 3 days", overdue, dueSoon)
	log.Printf("[CRON] Due digest: %s", message)
	return message, nil
}

// CleanupJobLogs prunes cron run records older than the retention window.
// Assignment history is never touched here; it only goes away with its
// assignment.
func (m *CronManager) CleanupJobLogs() (string, error) {
	cutoff := time.Now().Add(-jobLogRetention)

	result := m.db.Where("started_at < ?", cutoff).Delete(&model.CronJobLog{})
	if result.Error != nil {
		return "", fmt.Errorf("prune job logs: %w", result.Error)
	}

	message := fmt.Sprintf("removed %d job log rows older than %s", result.RowsAffected, cutoff.Format("2006-01-02"))
	log.Printf("[CRON] Cleanup: %s", message)
	return message, nil
}
