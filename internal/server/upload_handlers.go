// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"launchpad/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadThumbnail handles POST /api/uploads/thumbnail
// Accepts a multipart "thumbnail" file, normalizes it to a bounded WebP, and
// returns the public path to hand back in a project submission.
func (s *Server) UploadThumbnail(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Thumbnail file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer func() { _ = file.Close() }()

	url, err := s.thumbnails.Save(file)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"thumbnail_url": url,
	})
}
