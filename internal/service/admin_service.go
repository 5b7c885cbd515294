package service

import (
	"context"

	"socialconnect/internal/cache"
	"socialconnect/internal/models"
	"socialconnect/internal/observability"
	"socialconnect/internal/repository"
)

// AdminService implements the admin dashboard and moderation actions.
type AdminService struct {
	statsRepo repository.StatsRepository
	userRepo  repository.UserRepository
	postRepo  repository.PostRepository
}

func NewAdminService(
	statsRepo repository.StatsRepository,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
) *AdminService {
	return &AdminService{
		statsRepo: statsRepo,
		userRepo:  userRepo,
		postRepo:  postRepo,
	}
}

func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	return s.statsRepo.Totals(ctx)
}

// ListUsers returns one page of all accounts, including deactivated ones.
// query matches username or email; status is "", "active" or "deactivated".
func (s *AdminService) ListUsers(ctx context.Context, query, status string, page, limit int) ([]models.User, *models.Pagination, error) {
	switch status {
	case "", "active", "deactivated":
	default:
		return nil, nil, models.NewValidationError("Status must be 'active' or 'deactivated'")
	}
	page, limit = clampPage(page, limit)
	users, total, err := s.userRepo.List(ctx, query, status, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}
	return users, models.NewPagination(page, limit, total), nil
}

// ListPosts is the moderation listing. Unlike the public listings it can
// include soft-deleted posts: status is "", "active" or "removed".
func (s *AdminService) ListPosts(ctx context.Context, status string, page, limit int) ([]models.Post, *models.Pagination, error) {
	var active *bool
	switch status {
	case "":
	case "active":
		v := true
		active = &v
	case "removed":
		v := false
		active = &v
	default:
		return nil, nil, models.NewValidationError("Status must be 'active' or 'removed'")
	}

	page, limit = clampPage(page, limit)
	posts, total, err := s.postRepo.ListFiltered(ctx, repository.PostFilter{Active: active}, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}
	return posts, models.NewPagination(page, limit, total), nil
}

// SetUserActive toggles an account's active flag. Admin accounts cannot be
// deactivated by other admins.
func (s *AdminService) SetUserActive(ctx context.Context, adminID, targetID uint, active bool) (*models.User, error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !active && target.IsAdmin && target.ID != adminID {
		return nil, models.NewForbiddenError("Cannot deactivate another admin")
	}

	if err := s.userRepo.SetActive(ctx, targetID, active); err != nil {
		return nil, err
	}
	target.IsActive = active
	cache.InvalidateStats(ctx)

	action := "activate_user"
	if !active {
		action = "deactivate_user"
	}
	observability.ModerationActions.WithLabelValues(action).Inc()
	return target, nil
}

// RemovePost is the admin moderation path for soft-deleting any post.
func (s *AdminService) RemovePost(ctx context.Context, postID uint) error {
	post, err := s.postRepo.GetActiveByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.postRepo.SoftDelete(ctx, postID, post.AuthorID); err != nil {
		return err
	}
	cache.InvalidateStats(ctx)
	observability.ModerationActions.WithLabelValues("remove_post").Inc()
	return nil
}
