package services

import (
	"testing"
	"time"

	"github.com/sahilchouksey/classtrack/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Course{},
		&model.Assignment{},
		&model.HistoryEntry{},
		&model.CronJobLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fixedClock pins "today" so date-derived behavior is deterministic.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// date is shorthand for a UTC calendar date.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// mustCreateCourse inserts a course directly, bypassing the service.
func mustCreateCourse(t *testing.T, db *gorm.DB, name, code string) model.Course {
	t.Helper()

	course := model.Course{
		Name:     name,
		Code:     code,
		Color:    "#0062B8",
		Credits:  3,
		Semester: "Fall 2025",
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()

	var count int64
	if err := db.Model(value).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}
