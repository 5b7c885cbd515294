package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"socialconnect/internal/middleware"
	"socialconnect/internal/models"
	"socialconnect/internal/observability"
	"socialconnect/internal/repository"
	"socialconnect/internal/validation"
)

// PostService handles post mutations and the like/unlike flow.
type PostService struct {
	postRepo  repository.PostRepository
	likeRepo  repository.LikeRepository
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	isAdmin   func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID   uint
	Content  string
	ImageURL string
	Category string
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Content  string
	Category string
}

func NewPostService(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		likeRepo:  likeRepo,
		notifRepo: notifRepo,
		userRepo:  userRepo,
		isAdmin:   isAdmin,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	// Persist the trimmed content so the validated length matches the stored length.
	content := strings.TrimSpace(in.Content)
	if err := validation.ValidatePostContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	category := models.PostCategory(in.Category)
	if category == "" {
		category = models.CategoryGeneral
	}
	if !models.ValidCategory(category) {
		return nil, models.NewValidationError("Invalid category")
	}

	post := &models.Post{
		Content:  content,
		ImageURL: in.ImageURL,
		Category: category,
		AuthorID: in.UserID,
		IsActive: true,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetActiveByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}
	content := strings.TrimSpace(in.Content)
	if err := validation.ValidatePostContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Category != "" {
		category := models.PostCategory(in.Category)
		if !models.ValidCategory(category) {
			return nil, models.NewValidationError("Invalid category")
		}
		post.Category = category
	}

	post.Content = content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost soft-deletes a post. Authors can delete their own posts; admins
// can delete anyone's.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetActiveByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}
	return s.postRepo.SoftDelete(ctx, postID, post.AuthorID)
}

// LikePost records a like and returns the post's refreshed like state. The
// count comes from a re-read after the mutation, never from a client-side
// increment. Already-liked posts surface as Conflict.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (*models.LikeState, error) {
	post, err := s.postRepo.GetActiveByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.likeRepo.Create(ctx, userID, postID); err != nil {
		return nil, err
	}

	s.notifyLike(ctx, userID, post)

	updated, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &models.LikeState{LikeCount: updated.LikeCount, IsLiked: true}, nil
}

// UnlikePost removes a like and returns the refreshed state. Unliking a post
// that was never liked succeeds without changing the count.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) (*models.LikeState, error) {
	if _, err := s.postRepo.GetActiveByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.likeRepo.Delete(ctx, userID, postID); err != nil {
		return nil, err
	}
	updated, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &models.LikeState{LikeCount: updated.LikeCount, IsLiked: false}, nil
}

// notifyLike creates the like notification best-effort. Self-likes never
// notify, and a failed insert is logged without failing the request.
func (s *PostService) notifyLike(ctx context.Context, likerID uint, post *models.Post) {
	if post.AuthorID == likerID {
		return
	}
	liker, err := s.userRepo.GetByID(ctx, likerID)
	if err != nil {
		middleware.Logger.Warn("failed to load liker for notification", slog.String("error", err.Error()))
		return
	}
	postID := post.ID
	n := &models.Notification{
		Recipient: post.AuthorID,
		SenderID:  likerID,
		Type:      models.NotificationLike,
		PostID:    &postID,
		Message:   fmt.Sprintf("%s liked your post", liker.Username),
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		middleware.Logger.Warn("failed to create like notification", slog.String("error", err.Error()))
		return
	}
	observability.NotificationsCreated.WithLabelValues(string(models.NotificationLike)).Inc()
}
