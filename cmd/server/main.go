// main.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/wbooks/notes-api/internal/config"
	"github.com/wbooks/notes-api/internal/database"
	"github.com/wbooks/notes-api/internal/handlers"
	"github.com/wbooks/notes-api/internal/middleware"
	"github.com/wbooks/notes-api/internal/types"

	_ "github.com/wbooks/notes-api/docs/api" // Swagger docs
)

// @title WBooks Notes API
// @version 1.0.0
// @description Multi-tenant notes and books cataloging service

// @contact.name API Support
// @contact.url https://github.com/wbooks/notes-api

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("notes_api")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	v1 := api.Group("/v1")

	// Create handlers
	notesHandler := &handlers.NotesHandler{DB: db}
	usersHandler := &handlers.UsersHandler{DB: db}

	// Notes routes (all require an authenticated, tenant-resolved user)
	notes := v1.Group("/notes", middleware.AuthUser(cfg, db))
	notes.Get("/", notesHandler.Index)
	notes.Get("/:id", notesHandler.Show)
	notes.Post("/", notesHandler.Create)

	// Users routes
	v1.Get("/users/current", middleware.AuthUser(cfg, db), usersHandler.Current)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "resource not found",
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	// Taxonomy errors carry their own status code
	var cerr *types.CustomError
	if errors.As(err, &cerr) {
		code = cerr.Code
		message = cerr.Message
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
