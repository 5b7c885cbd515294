package server

import (
	"socialconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAdminStats handles GET /api/admin/stats
func (s *Server) GetAdminStats(c *fiber.Ctx) error {
	ctx := c.Context()
	stats, err := s.adminService.Stats(ctx)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, stats, "")
}

// GetAdminUsers handles GET /api/admin/users, listing all accounts including
// deactivated ones.
func (s *Server) GetAdminUsers(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePageRequest(c)

	users, pagination, err := s.adminService.ListUsers(ctx, c.Query("q"), c.Query("status"), page.Page, page.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondPage(c, users, pagination)
}

// GetAdminPosts handles GET /api/admin/posts?status=, the moderation listing
// that can include removed posts.
func (s *Server) GetAdminPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePageRequest(c)

	posts, pagination, err := s.adminService.ListPosts(ctx, c.Query("status"), page.Page, page.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondPage(c, posts, pagination)
}

// ToggleUserActive handles PATCH /api/admin/users/:id/deactivate, flipping the
// target account between active and deactivated.
func (s *Server) ToggleUserActive(c *fiber.Ctx) error {
	ctx := c.Context()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	target, repoErr := s.userRepo.GetByID(ctx, targetID)
	if repoErr != nil {
		return models.RespondWithError(c, repoErr)
	}

	user, svcErr := s.adminService.SetUserActive(ctx, currentUserID(c), targetID, !target.IsActive)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}

	message := "User deactivated"
	if user.IsActive {
		message = "User activated"
	}
	return models.Respond(c, fiber.StatusOK, user, message)
}

// AdminDeletePost handles DELETE /api/admin/posts/:id
func (s *Server) AdminDeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.adminService.RemovePost(ctx, postID); svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Post removed")
}
