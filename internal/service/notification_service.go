package service

import (
	"context"

	"socialconnect/internal/models"
	"socialconnect/internal/repository"
)

// NotificationService serves a user's notification inbox.
type NotificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// List returns one newest-first page of the user's notifications, optionally
// restricted to unread ones.
func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, page, limit int) ([]models.NotificationView, *models.Pagination, error) {
	page, limit = clampPage(page, limit)
	notifications, total, err := s.notifRepo.List(ctx, userID, unreadOnly, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}

	views := make([]models.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		view := models.NotificationView{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
			Sender: models.UserSummary{
				ID:        n.Sender.ID,
				Username:  n.Sender.Username,
				FirstName: n.Sender.FirstName,
				LastName:  n.Sender.LastName,
				AvatarURL: n.Sender.AvatarURL,
			},
		}
		if n.Post != nil && n.PostID != nil {
			view.Post = &models.PostPreview{
				ID:       n.Post.ID,
				Content:  n.Post.Content,
				ImageURL: n.Post.ImageURL,
			}
		}
		views = append(views, view)
	}
	return views, models.NewPagination(page, limit, total), nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return s.notifRepo.MarkRead(ctx, notificationID, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notifRepo.UnreadCount(ctx, userID)
}
