package server

import (
	"socialconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications. Pass unread_only=true to
// restrict the listing to unread entries.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePageRequest(c)
	unreadOnly := c.QueryBool("unread_only")

	notifications, pagination, svcErr := s.notifService.List(ctx, currentUserID(c), unreadOnly, page.Page, page.Limit)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondPage(c, notifications, pagination)
}

// GetUnreadCount handles GET /api/notifications/unread-count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	ctx := c.Context()
	count, svcErr := s.notifService.UnreadCount(ctx, currentUserID(c))
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{"unread_count": count}, "")
}

// MarkNotificationRead handles PATCH /api/notifications/:id/read
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	ctx := c.Context()
	notificationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.notifService.MarkRead(ctx, currentUserID(c), notificationID); svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Notification marked as read")
}

// MarkAllNotificationsRead handles PATCH /api/notifications/read-all
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	ctx := c.Context()
	if svcErr := s.notifService.MarkAllRead(ctx, currentUserID(c)); svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.Respond(c, fiber.StatusOK, nil, "All notifications marked as read")
}
