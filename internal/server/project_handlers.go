// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"launchpad/internal/models"
	"launchpad/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateProject handles POST /api/projects
func (s *Server) CreateProject(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		WebsiteURL   string `json:"website_url"`
		ThumbnailURL string `json:"thumbnail_url,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectService.CreateProject(ctx, service.CreateProjectInput{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		WebsiteURL:   req.WebsiteURL,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// ToggleLike handles POST /api/projects/:id/like
// This endpoint toggles the like status - if already liked, it unlikes; if not liked, it likes
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, count, err := s.projectService.ToggleLike(ctx, userID, projectID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"project_id": projectID,
		"has_liked":  liked,
		"like_count": count,
	})
}
