package service

import (
	"context"
	"fmt"
	"log/slog"

	"socialconnect/internal/middleware"
	"socialconnect/internal/models"
	"socialconnect/internal/observability"
	"socialconnect/internal/repository"

	"github.com/jinzhu/copier"
)

// FollowService manages the directed follow graph.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	notifRepo  repository.NotificationRepository
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		notifRepo:  notifRepo,
	}
}

// Follow creates a follow edge from follower to target. Following yourself
// is rejected, following a missing or deactivated user is NotFound, and a
// duplicate edge is Conflict.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("You cannot follow yourself")
	}
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if !target.IsActive {
		return models.NewNotFoundError("User")
	}
	if err := s.followRepo.Create(ctx, followerID, targetID); err != nil {
		return err
	}

	s.notifyFollow(ctx, followerID, targetID)
	return nil
}

// Unfollow removes the follow edge. Unfollowing someone you never followed
// succeeds as a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("You cannot unfollow yourself")
	}
	return s.followRepo.Delete(ctx, followerID, targetID)
}

// Followers returns one page of a user's followers as profile summaries.
func (s *FollowService) Followers(ctx context.Context, userID uint, page, limit int) ([]models.UserSummary, *models.Pagination, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, nil, err
	}
	page, limit = clampPage(page, limit)
	users, total, err := s.followRepo.ListFollowers(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}
	summaries, err := toSummaries(users)
	if err != nil {
		return nil, nil, err
	}
	return summaries, models.NewPagination(page, limit, total), nil
}

// Following returns one page of the users someone follows.
func (s *FollowService) Following(ctx context.Context, userID uint, page, limit int) ([]models.UserSummary, *models.Pagination, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, nil, err
	}
	page, limit = clampPage(page, limit)
	users, total, err := s.followRepo.ListFollowing(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}
	summaries, err := toSummaries(users)
	if err != nil {
		return nil, nil, err
	}
	return summaries, models.NewPagination(page, limit, total), nil
}

func toSummaries(users []models.User) ([]models.UserSummary, error) {
	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		var summary models.UserSummary
		if err := copier.Copy(&summary, &users[i]); err != nil {
			return nil, models.NewInternalError(err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// notifyFollow creates the follow notification best-effort; a failed insert
// is logged without failing the request.
func (s *FollowService) notifyFollow(ctx context.Context, followerID, targetID uint) {
	follower, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		middleware.Logger.Warn("failed to load follower for notification", slog.String("error", err.Error()))
		return
	}
	n := &models.Notification{
		Recipient: targetID,
		SenderID:  followerID,
		Type:      models.NotificationFollow,
		Message:   fmt.Sprintf("%s started following you", follower.Username),
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		middleware.Logger.Warn("failed to create follow notification", slog.String("error", err.Error()))
		return
	}
	observability.NotificationsCreated.WithLabelValues(string(models.NotificationFollow)).Inc()
}
