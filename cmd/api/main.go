package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/config"
	"alfredoptarigan/resume-reviewer/internal/handlers"
	"alfredoptarigan/resume-reviewer/internal/services"
)

// leaves room for the provider call on top of reading the upload
const writeTimeoutMargin = 30 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	log := config.NewLogger(cfg)
	if !cfg.EnvFileLoaded {
		log.Info("No .env file found. Using environment and default values.")
	}

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	log.Info("Config loaded successfully")

	// Initialize services
	extractor := services.NewDefaultTextExtractor()

	completion, err := services.NewCompletionClient(cfg.LLM, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize completion client")
	}
	log.WithFields(logrus.Fields{
		"provider":   completion.Name(),
		"registered": services.RegisteredProviders(),
		"timeout":    cfg.LLM.Timeout.String(),
	}).Info("Completion client initialized")

	reviewService := services.NewReviewService(extractor, completion, log)

	// Initialize Handlers
	reviewHandler := handlers.NewReviewHandler(reviewService)
	uploadHandler := handlers.NewUploadHandler(reviewService, cfg.Storage.MaxFileSize)
	healthHandler := handlers.NewHealthHandler(reviewService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Resume Reviewer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + writeTimeoutMargin,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.RegisterRoutes(app, reviewHandler, uploadHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(cfg.LLM.Timeout); err != nil {
			log.WithError(err).Error("Server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.WithFields(logrus.Fields{
		"addr": addr,
		"env":  cfg.Server.Env,
	}).Info("Server starting")

	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
