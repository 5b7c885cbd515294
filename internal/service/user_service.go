package service

import (
	"context"
	"io"
	"strings"

	"socialconnect/internal/models"
	"socialconnect/internal/repository"
	"socialconnect/internal/storage"
	"socialconnect/internal/validation"

	"github.com/jinzhu/copier"
)

// MinSearchQueryLength is the shortest user-search query that hits storage;
// anything shorter returns an empty page.
const MinSearchQueryLength = 2

// UserService handles profiles, profile updates, avatars and user search.
type UserService struct {
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	avatarStore storage.AvatarStore
}

type UpdateProfileInput struct {
	UserID     uint
	FirstName  *string
	LastName   *string
	Bio        *string
	Website    *string
	Location   *string
	Visibility *string
}

func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	avatarStore storage.AvatarStore,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		followRepo:  followRepo,
		avatarStore: avatarStore,
	}
}

// GetProfile returns a user's profile subject to its visibility setting.
// Owners and admins always see the profile; private profiles are hidden from
// everyone else and followers-only profiles require an accepted follow edge.
func (s *UserService) GetProfile(ctx context.Context, targetID, viewerID uint, viewerIsAdmin bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, models.NewNotFoundError("User")
	}
	if targetID == viewerID || viewerIsAdmin {
		return user, nil
	}

	switch user.ProfileVisibility {
	case models.VisibilityPrivate:
		return nil, models.NewForbiddenError("This profile is private")
	case models.VisibilityFollowers:
		following, err := s.followRepo.Exists(ctx, viewerID, targetID)
		if err != nil {
			return nil, err
		}
		if !following {
			return nil, models.NewForbiddenError("This profile is visible to followers only")
		}
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = *in.Bio
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Website != nil {
		user.Website = *in.Website
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.Visibility != nil {
		visibility := models.ProfileVisibility(*in.Visibility)
		if !models.ValidVisibility(visibility) {
			return nil, models.NewValidationError("Invalid profile visibility")
		}
		user.ProfileVisibility = visibility
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar processes and stores a new avatar image, then records its URL
// on the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, r io.Reader) (*models.User, error) {
	if s.avatarStore == nil {
		return nil, &models.AppError{
			Code:    "INTERNAL_ERROR",
			Message: "Avatar storage is not configured",
		}
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := s.avatarStore.Upload(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SearchUsers matches active users by username or name, ordered by follower
// count, annotated with whether the viewer already follows each result. A
// query shorter than MinSearchQueryLength returns an empty page.
func (s *UserService) SearchUsers(ctx context.Context, query string, viewerID uint, page, limit int) ([]models.SearchedUser, *models.Pagination, error) {
	page, limit = clampPage(page, limit)
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinSearchQueryLength {
		return []models.SearchedUser{}, models.NewPagination(page, limit, 0), nil
	}

	users, total, err := s.userRepo.Search(ctx, query, viewerID, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	followedIDs, err := s.followRepo.FollowingIDsAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, nil, err
	}
	followed := make(map[uint]struct{}, len(followedIDs))
	for _, id := range followedIDs {
		followed[id] = struct{}{}
	}

	results := make([]models.SearchedUser, 0, len(users))
	for i := range users {
		var result models.SearchedUser
		if err := copier.Copy(&result, &users[i]); err != nil {
			return nil, nil, models.NewInternalError(err)
		}
		_, result.IsFollowing = followed[users[i].ID]
		results = append(results, result)
	}
	return results, models.NewPagination(page, limit, total), nil
}
