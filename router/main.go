package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/classtrack/config"
	"github.com/sahilchouksey/classtrack/database"
	"github.com/sahilchouksey/classtrack/handlers"
	assignment_handlers "github.com/sahilchouksey/classtrack/handlers/assignment"
	course_handlers "github.com/sahilchouksey/classtrack/handlers/course"
	seed_handlers "github.com/sahilchouksey/classtrack/handlers/seed"
	stats_handlers "github.com/sahilchouksey/classtrack/handlers/stats"
	"github.com/sahilchouksey/classtrack/services"
	"github.com/sahilchouksey/classtrack/utils/cache"
	"github.com/sahilchouksey/classtrack/utils/middleware"
)

// SetupRoutes wires every endpoint onto the app.
func SetupRoutes(app *fiber.App, store *database.GORMStore, getEnv *config.EnviornmentVariable) {
	db := store.GetDB()

	// Initialize services
	courseService := services.NewCourseService(db)
	assignmentService := services.NewAssignmentService(db)
	statsService := services.NewStatsService(db)
	seeder := database.NewSeeder(db)

	// Initialize handlers
	courseHandler := course_handlers.NewCourseHandler(courseService)
	assignmentHandler := assignment_handlers.NewAssignmentHandler(assignmentService)
	statsHandler := stats_handlers.NewStatsHandler(statsService)
	seedHandler := seed_handlers.NewSeedHandler(seeder)

	// Redis guards the destructive reseed endpoint. When Redis is not
	// reachable the endpoint stays available without the cooldown.
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	var reseedGuard *middleware.ReseedGuard
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Reseed cooldown will be disabled.", err)
	} else {
		reseedGuard = middleware.NewReseedGuard(redisCache)
	}

	api := app.Group("/api")

	// Health
	api.Get("/health", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, store)
	})

	// Courses
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.ListCourses)
	courses.Post("/", courseHandler.CreateCourse)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Put("/:id", courseHandler.UpdateCourse)
	courses.Delete("/:id", courseHandler.DeleteCourse)

	// Assignments. The static /week route must be registered before /:id.
	assignments := api.Group("/assignments")
	assignments.Get("/", assignmentHandler.ListAssignments)
	assignments.Get("/week", assignmentHandler.ListWeek)
	assignments.Post("/", assignmentHandler.CreateAssignment)
	assignments.Get("/:id", assignmentHandler.GetAssignment)
	assignments.Put("/:id", assignmentHandler.UpdateAssignment)
	assignments.Patch("/:id/complete", assignmentHandler.ToggleComplete)
	assignments.Delete("/:id", assignmentHandler.DeleteAssignment)
	assignments.Get("/:id/history", assignmentHandler.GetHistory)

	// Statistics
	api.Get("/stats", statsHandler.GetStats)

	// Destructive reseed
	if reseedGuard != nil {
		api.Post("/seed", reseedGuard.Limit(), seedHandler.Reseed)
	} else {
		api.Post("/seed", seedHandler.Reseed)
	}
}
