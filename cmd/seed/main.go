package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sahilchouksey/classtrack/database"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Initialize database connection using GORM
	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("ClassTrack - Database Reseed")
	fmt.Println(separator)
	fmt.Println()
	fmt.Println("This replaces ALL stored data with the demo dataset.")
	fmt.Println()

	seeder := database.NewSeeder(store.GetDB())
	if err := seeder.Reseed(); err != nil {
		log.Fatalf("Reseed failed: %v", err)
	}

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("Reseed completed successfully!")
	fmt.Println(separator)
}
