package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-reviewer/internal/models"
)

// ErrorHandler renders errors that reach Fiber with the same {error} body the
// handlers write.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	message := err.Error()
	if code == fiber.StatusInternalServerError && e == nil {
		message = "Server error"
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: message,
	})
}
