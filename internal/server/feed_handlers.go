package server

import (
	"socialconnect/internal/models"
	"socialconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed?page=&limit=&q=
// A non-empty q switches the feed into search mode.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	page := parsePageRequest(c)

	feed, pagination, err := s.feedService.GetFeed(ctx, service.FeedInput{
		UserID: userID,
		Page:   page.Page,
		Limit:  page.Limit,
		Query:  c.Query("q"),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondPage(c, feed, pagination)
}
