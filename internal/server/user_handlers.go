package server

import (
	"socialconnect/internal/models"
	"socialconnect/internal/service"
	"socialconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	user, err := s.userRepo.GetByID(ctx, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "")
}

// UpdateMyProfile handles PUT /api/users/me. Only fields present in the body
// are changed.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		FirstName  *string `json:"first_name" validate:"omitempty,max=50"`
		LastName   *string `json:"last_name" validate:"omitempty,max=50"`
		Bio        *string `json:"bio" validate:"omitempty,max=160"`
		Website    *string `json:"website" validate:"omitempty,url"`
		Location   *string `json:"location" validate:"omitempty,max=100"`
		Visibility *string `json:"profile_visibility" validate:"omitempty,visibility"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateStruct(req); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	user, svcErr := s.userService.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID:     currentUserID(c),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Bio:        req.Bio,
		Website:    req.Website,
		Location:   req.Location,
		Visibility: req.Visibility,
	})
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.Respond(c, fiber.StatusOK, user, "Profile updated")
}

// UploadAvatar handles POST /api/users/me/avatar with a multipart "avatar"
// file field.
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	ctx := c.Context()

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Missing avatar file"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Could not read avatar file"))
	}
	defer file.Close()

	user, svcErr := s.userService.UploadAvatar(ctx, currentUserID(c), file)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.Respond(c, fiber.StatusOK, user, "Avatar updated")
}

// SearchUsers handles GET /api/users/search?q=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePageRequest(c)

	users, pagination, svcErr := s.userService.SearchUsers(ctx, c.Query("q"), currentUserID(c), page.Page, page.Limit)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondPage(c, users, pagination)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID := currentUserID(c)
	admin, adminErr := s.isAdmin(c, viewerID)
	if adminErr != nil {
		return models.RespondWithError(c, models.NewInternalError(adminErr))
	}

	user, svcErr := s.userService.GetProfile(ctx, targetID, viewerID, admin)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.Respond(c, fiber.StatusOK, user, "")
}
