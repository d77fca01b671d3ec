package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/services"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// HandleReview handles POST /review
func (h *ReviewHandler) HandleReview(c *fiber.Ctx) error {
	var req models.ReviewRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid request payload",
		})
	}

	result, err := h.reviewService.Review(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(result)
}

func writeError(c *fiber.Ctx, err error) error {
	return c.Status(services.StatusCode(err)).JSON(models.ErrorResponse{
		Error: services.PublicMessage(err),
	})
}
