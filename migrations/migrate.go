package main

import (
	"log"
	"os"

	"assetserver/src/config"
	"assetserver/src/database"

	"github.com/pressly/goose/v3"
)

func main() {
	// Load the appropriate config based on the environment
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Fatalf("Error loading config for environment: %v", err)
	}
	if err := config.ResolveSecretsFromAWS(cfg); err != nil {
		log.Fatalf("Error resolving database secrets: %v", err)
	}

	db, err := database.SetupGormDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB from GORM DB: %v", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set migration dialect: %v", err)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	if err := goose.Run(command, sqlDB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations %s: %v", command, err)
	}

	log.Printf("Database migration %s completed successfully", command)
}
