package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/perdb/perdir-backend/internal/handlers"
	"github.com/perdb/perdir-backend/internal/middleware"
	"github.com/perdb/perdir-backend/internal/schemas"
)

type RouterConfig struct {
	UserHandler  *handlers.UserHandler
	PhoneHandler *handlers.PhoneHandler
	EmailHandler *handlers.EmailHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	schemas.RegisterTagNames()

	router := gin.Default()
	router.Use(middleware.RequestID())

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Users
	router.POST("/users", cfg.UserHandler.Create)
	router.GET("/users", cfg.UserHandler.List)
	router.GET("/users/:id", cfg.UserHandler.Get)
	router.PUT("/users/:id/edit", cfg.UserHandler.Replace)
	router.DELETE("/users/:id", cfg.UserHandler.Delete)

	// Phone numbers
	router.POST("/user/:userId/phone/add", cfg.PhoneHandler.Add)
	router.GET("/user/:userId/phone", cfg.PhoneHandler.List)
	router.PUT("/user/:userId/phone/edit/:phoneId", cfg.PhoneHandler.Update)
	router.DELETE("/user/:userId/phone/delete/:phoneId", cfg.PhoneHandler.Delete)

	// Emails
	router.POST("/user/:userId/email/add", cfg.EmailHandler.Add)
	router.PUT("/user/:userId/email/edit/:emailId", cfg.EmailHandler.Update)
	router.DELETE("/user/:userId/email/delete/:emailId", cfg.EmailHandler.Delete)

	return router
}
