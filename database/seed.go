package database

import (
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/classtrack/model"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// demoDate returns a due date relative to today so the demo data always has
// a mix of overdue, due-soon and future assignments.
func demoDate(daysFromNow int) time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, daysFromNow)
}

// demoCourses is the fixed demo dataset inserted by Reseed.
func demoCourses() []model.Course {
	return []model.Course{
		{Name: "Applied Programming", Code: "CSE 310", Color: "#0062B8", Credits: 3, Semester: "Fall 2025"},
		{Name: "Personal Health", Code: "PUBH 132", Color: "#28A745", Credits: 2, Semester: "Fall 2025"},
		{Name: "Statistics", Code: "MATH 221", Color: "#FFB81C", Credits: 3, Semester: "Fall 2025"},
	}
}

func demoAssignments(courseIDs []uint, completedAt time.Time) []model.Assignment {
	return []model.Assignment{
		{
			CourseID:    courseIDs[0],
			Title:       "JavaScript Module",
			Description: "Build task manager with localStorage",
			DueDate:     demoDate(2),
			Priority:    model.PriorityHigh,
			Points:      100,
			Completed:   true,
			CompletedAt: &completedAt,
		},
		{
			CourseID:    courseIDs[0],
			Title:       "Python Flask Backend",
			Description: "Implement REST API with SQLite",
			DueDate:     demoDate(2),
			Priority:    model.PriorityHigh,
			Points:      100,
		},
		{
			CourseID:    courseIDs[1],
			Title:       "Weekly Fitness Log",
			Description: "Track 150 minutes of activity",
			DueDate:     demoDate(4),
			Priority:    model.PriorityMedium,
			Points:      50,
		},
		{
			CourseID:    courseIDs[2],
			Title:       "Probability Homework",
			Description: "Complete chapter 5 problems",
			DueDate:     demoDate(-2),
			Priority:    model.PriorityMedium,
			Points:      75,
		},
	}
}

// SeedIfEmpty inserts the demo dataset only when the store has no courses.
// Used at startup so a fresh install has something to show.
func (s *Seeder) SeedIfEmpty() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Database already contains data, skipping seed.")
		return nil
	}
	return s.Reseed()
}

// Reseed atomically replaces the entire store contents with the fixed demo
// dataset. The whole replace runs in one transaction: either the old data is
// fully gone and the demo data fully present, or nothing changed.
func (s *Seeder) Reseed() error {
	log.Println("Reseeding database with demo data...")

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Children before parents, so no row ever dangles mid-replace.
		if err := tx.Where("1 = 1").Delete(&model.HistoryEntry{}).Error; err != nil {
			return fmt.Errorf("clear assignment history: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&model.Assignment{}).Error; err != nil {
			return fmt.Errorf("clear assignments: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&model.Course{}).Error; err != nil {
			return fmt.Errorf("clear courses: %w", err)
		}

		courses := demoCourses()
		if err := tx.Create(&courses).Error; err != nil {
			return fmt.Errorf("seed courses: %w", err)
		}

		courseIDs := make([]uint, len(courses))
		for i, c := range courses {
			courseIDs[i] = c.ID
		}

		completedAt := time.Now().UTC().AddDate(0, 0, -1)
		assignments := demoAssignments(courseIDs, completedAt)
		if err := tx.Create(&assignments).Error; err != nil {
			return fmt.Errorf("seed assignments: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Println("Database reseeded with demo data.")
	return nil
}
