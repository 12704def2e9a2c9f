package main

import (
	"log"

	"fridge-assistant-backend/cmd/config"
	migration "fridge-assistant-backend/cmd/database/migrate"
	"fridge-assistant-backend/internal/utils"
)

func main() {
	utils.LoadConfig()

	if err := utils.InitLogger(); err != nil {
		log.Fatalf("Logger initialization failed: %v", err)
	}
	defer utils.SyncLogger()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	rdb, err := config.ConnectRedis()
	if err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}

	app, err := config.NewApp(db, rdb)
	if err != nil {
		log.Fatalf("App initialization failed: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
