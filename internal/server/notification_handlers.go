// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"launchpad/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications?ack=1
// With ack=1 the inbox is marked read as a side effect of viewing; the
// returned entries keep their load-time read state so the client can style
// fresh ones.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	if c.QueryBool("ack") {
		inbox, err := s.notificationSvc.OpenInbox(ctx, userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		return c.JSON(inbox)
	}

	inbox, err := s.notificationSvc.LoadInbox(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(inbox)
}

// MarkNotificationsRead handles POST /api/notifications/read
func (s *Server) MarkNotificationsRead(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	marked, err := s.notificationSvc.MarkAllRead(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"marked_read": marked,
	})
}
