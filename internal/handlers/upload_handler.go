package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/services"
)

type UploadHandler struct {
	reviewService services.ReviewService
	maxFileSize   int64
}

func NewUploadHandler(reviewService services.ReviewService, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		reviewService: reviewService,
		maxFileSize:   maxFileSize,
	}
}

// HandleReviewUpload handles POST /review/upload: the resume comes in as the
// "file" part and the remaining review fields as form values.
func (h *UploadHandler) HandleReviewUpload(c *fiber.Ctx) error {
	var req models.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "failed to parse multipart form",
		})
	}

	doc, err := h.readDocument(c)
	if err != nil {
		return err
	}

	result, err := h.reviewService.ReviewDocument(c.UserContext(), doc, req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(result)
}

// HandleExtract handles POST /extract
func (h *UploadHandler) HandleExtract(c *fiber.Ctx) error {
	doc, err := h.readDocument(c)
	if err != nil {
		return err
	}

	text, err := h.reviewService.Extract(doc)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.ExtractResponse{
		Filename:   doc.Filename,
		Kind:       string(doc.Kind),
		Text:       text,
		Characters: utf8.RuneCountInString(text),
	})
}

// readDocument loads the "file" part. Failures are returned as *fiber.Error
// and rendered by ErrorHandler.
func (h *UploadHandler) readDocument(c *fiber.Ctx) (models.SourceDocument, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.SourceDocument{}, fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	if fileHeader.Size > h.maxFileSize {
		return models.SourceDocument{}, fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize))
	}

	kind, err := services.DetectKind(fileHeader.Filename)
	if err != nil {
		return models.SourceDocument{}, fiber.NewError(services.StatusCode(err), services.PublicMessage(err))
	}

	data, err := readFile(fileHeader)
	if err != nil {
		return models.SourceDocument{}, fiber.NewError(fiber.StatusBadRequest, "failed to read uploaded file")
	}

	return models.NewSourceDocument(fileHeader.Filename, kind, data), nil
}

func readFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
