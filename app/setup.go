package app

import (
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/classtrack/api"
	"github.com/sahilchouksey/classtrack/config"
	"github.com/sahilchouksey/classtrack/database"
	"github.com/sahilchouksey/classtrack/router"
	"github.com/sahilchouksey/classtrack/services/cron"
	"github.com/sahilchouksey/classtrack/utils/middleware"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		return err
	}

	if err := store.Init(); err != nil {
		log.Println("Failed to initialize database tables")
		return err
	}

	// Seed demo data on a fresh install
	seeder := database.NewSeeder(store.GetDB())
	if err := seeder.SeedIfEmpty(); err != nil {
		return err
	}

	// Initialize cron manager unless disabled via CRON_ENABLED=false
	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewCronManager(store.GetDB())
		if err := cronManager.Start(); err != nil {
			// Background maintenance is not worth failing startup over.
			log.Printf("Warning: Failed to start cron jobs: %v", err)
			cronManager = nil
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	})

	// Setup Routes
	router.SetupRoutes(app, store, getEnv)

	// Get the PORT & Start the Server
	return server.Run()
}
