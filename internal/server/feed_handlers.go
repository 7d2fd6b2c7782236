// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"launchpad/internal/models"
	"launchpad/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed?sort=...&limit=...&offset=...
// The feed always renders: a storage hiccup yields an empty or partially
// enriched page rather than an error.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	strategy := service.ParseSortStrategy(c.Query("sort"))
	projects := s.feedService.BuildFeed(ctx, service.BuildFeedInput{
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: userID,
		Strategy:      strategy,
	})

	return c.JSON(fiber.Map{
		"sort":     string(strategy),
		"projects": projects,
	})
}

// GetProject handles GET /api/projects/:id
func (s *Server) GetProject(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	project, err := s.feedService.GetProject(ctx, id, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	return c.JSON(project)
}
