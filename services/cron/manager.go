package cron

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sahilchouksey/classtrack/model"
	"gorm.io/gorm"
)

// CronManager manages all scheduled maintenance jobs
type CronManager struct {
	cron *cron.Cron
	db   *gorm.DB
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron: c,
		db:   db,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Daily at 7 AM: log the due-soon / overdue digest
	_, err := m.cron.AddFunc("0 0 7 * * *", func() {
		m.runJob("due_digest", m.DueDigest)
	})
	if err != nil {
		return err
	}

	// Daily at 2 AM: prune old cron job logs
	_, err = m.cron.AddFunc("0 0 2 * * *", func() {
		m.runJob("cleanup_job_logs", m.CleanupJobLogs)
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// runJob records the run in cron_job_logs around executing it.
func (m *CronManager) runJob(name string, fn func() (string, error)) {
	entry := model.CronJobLog{
		RunID:     uuid.NewString(),
		JobName:   name,
		Status:    "started",
		StartedAt: time.Now(),
	}
	if err := m.db.Create(&entry).Error; err != nil {
		log.Printf("[CRON] Failed to record start of %s: %v", name, err)
	}

	message, err := fn()

	done := time.Now()
	entry.CompletedAt = &done
	entry.Message = message
	if err != nil {
		entry.Status = "failed"
		entry.Message = err.Error()
		log.Printf("[CRON] Job %s failed: %v", name, err)
	} else {
		entry.Status = "completed"
	}

	if entry.ID != 0 {
		if err := m.db.Save(&entry).Error; err != nil {
			log.Printf("[CRON] Failed to record completion of %s: %v", name, err)
		}
	}
}
