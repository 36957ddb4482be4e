package main

import (
	"fmt"
	"os"

	"github.com/perdb/perdir-backend/internal/db"
	"github.com/perdb/perdir-backend/internal/handlers"
	"github.com/perdb/perdir-backend/internal/logger"
	"github.com/perdb/perdir-backend/internal/repos"
	"github.com/perdb/perdir-backend/internal/server"
	"github.com/perdb/perdir-backend/internal/services"
	"github.com/perdb/perdir-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	dbURL := utils.GetEnv("DB_URL", "sqlite://perdb.db", log)
	port := utils.GetEnv("PORT", "8080", log)

	// Database
	databaseService, err := db.NewDatabaseService(dbURL, log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	defer databaseService.Close()
	if err = databaseService.AutoMigrateAll(); err != nil {
		log.Error("Database migration failed", "error", err)
		os.Exit(1)
	}
	theDB := databaseService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(theDB, log)
	emailRepo := repos.NewEmailRepo(theDB, log)
	phoneRepo := repos.NewPhoneNumberRepo(theDB, log)

	// Services
	log.Info("Setting up services from main...")
	userService := services.NewUserService(theDB, log, userRepo, emailRepo, phoneRepo)
	emailService := services.NewEmailService(theDB, log, emailRepo)
	phoneService := services.NewPhoneService(theDB, log, phoneRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	userHandler := handlers.NewUserHandler(userService)
	phoneHandler := handlers.NewPhoneHandler(phoneService)
	emailHandler := handlers.NewEmailHandler(emailService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		UserHandler:  userHandler,
		PhoneHandler: phoneHandler,
		EmailHandler: emailHandler,
	})

	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
