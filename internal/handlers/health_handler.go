package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/services"
)

type HealthHandler struct {
	reviewService services.ReviewService
}

func NewHealthHandler(reviewService services.ReviewService) *HealthHandler {
	return &HealthHandler{
		reviewService: reviewService,
	}
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:   "healthy",
		Provider: h.reviewService.Provider(),
		Time:     time.Now(),
	})
}
