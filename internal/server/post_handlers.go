package server

import (
	"socialconnect/internal/models"
	"socialconnect/internal/service"
	"socialconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var req struct {
		Content  string `json:"content" validate:"required,max=280"`
		ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
		Category string `json:"category,omitempty" validate:"postcategory"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateStruct(req); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:   userID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Category: req.Category,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, post, "Post created")
}

// ListPosts handles GET /api/posts?category=&author_id=
func (s *Server) ListPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePageRequest(c)
	authorID := c.QueryInt("author_id")
	if authorID < 0 {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid author ID"))
	}

	posts, pagination, err := s.feedService.ListPosts(ctx, currentUserID(c),
		models.PostCategory(c.Query("category")), uint(authorID), page.Page, page.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondPage(c, posts, pagination)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, svcErr := s.feedService.GetPost(ctx, postID, currentUserID(c))
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.Respond(c, fiber.StatusOK, post, "")
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string `json:"content" validate:"required,max=280"`
		Category string `json:"category,omitempty" validate:"postcategory"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateStruct(req); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	post, svcErr := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:   currentUserID(c),
		PostID:   postID,
		Content:  req.Content,
		Category: req.Category,
	})
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.Respond(c, fiber.StatusOK, post, "Post updated")
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.postService.DeletePost(ctx, currentUserID(c), postID); svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Post deleted")
}

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, svcErr := s.postService.LikePost(ctx, currentUserID(c), postID)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.Respond(c, fiber.StatusOK, state, "")
}

// UnlikePost handles DELETE /api/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, svcErr := s.postService.UnlikePost(ctx, currentUserID(c), postID)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.Respond(c, fiber.StatusOK, state, "")
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePageRequest(c)

	// Visibility rules apply the same as viewing the profile itself.
	viewerID := currentUserID(c)
	admin, adminErr := s.isAdmin(c, viewerID)
	if adminErr != nil {
		return models.RespondWithError(c, models.NewInternalError(adminErr))
	}
	if _, profileErr := s.userService.GetProfile(ctx, targetID, viewerID, admin); profileErr != nil {
		return models.RespondWithError(c, profileErr)
	}

	posts, pagination, svcErr := s.feedService.UserPosts(ctx, targetID, viewerID, page.Page, page.Limit)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondPage(c, posts, pagination)
}
