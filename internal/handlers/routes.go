package handlers

import "github.com/gofiber/fiber/v2"

var endpoints = []string{
	"POST /api/v1/review",
	"POST /api/v1/review/upload",
	"POST /api/v1/extract",
	"GET /api/v1/health",
}

func RegisterRoutes(app *fiber.App, review *ReviewHandler, upload *UploadHandler, health *HealthHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", health.HandleHealth)
	api.Post("/review", review.HandleReview)
	api.Post("/review/upload", upload.HandleReviewUpload)
	api.Post("/extract", upload.HandleExtract)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "AI Resume Reviewer API",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})
}
