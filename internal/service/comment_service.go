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

// CommentService handles comment creation, listing and soft deletion.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	notifRepo   repository.NotificationRepository
	userRepo    repository.UserRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		notifRepo:   notifRepo,
		userRepo:    userRepo,
		isAdmin:     isAdmin,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.CommentPreview, error) {
	post, err := s.postRepo.GetActiveByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(in.Content)
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment := &models.Comment{
		Content:  content,
		AuthorID: in.UserID,
		PostID:   in.PostID,
		IsActive: true,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	s.notifyComment(ctx, author, post)

	return &models.CommentPreview{
		ID:        comment.ID,
		Content:   comment.Content,
		PostID:    comment.PostID,
		CreatedAt: comment.CreatedAt,
		Author: models.UserSummary{
			ID:        author.ID,
			Username:  author.Username,
			FirstName: author.FirstName,
			LastName:  author.LastName,
			AvatarURL: author.AvatarURL,
		},
	}, nil
}

// ListComments returns one newest-first page of a post's active comments.
// The listing is public: no viewer identity is required.
func (s *CommentService) ListComments(ctx context.Context, postID uint, page, limit int) ([]models.CommentPreview, *models.Pagination, error) {
	if _, err := s.postRepo.GetActiveByID(ctx, postID); err != nil {
		return nil, nil, err
	}
	page, limit = clampPage(page, limit)
	offset := (page - 1) * limit

	comments, total, err := s.commentRepo.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	previews := make([]models.CommentPreview, 0, len(comments))
	for _, c := range comments {
		previews = append(previews, models.CommentPreview{
			ID:        c.ID,
			Content:   c.Content,
			PostID:    c.PostID,
			CreatedAt: c.CreatedAt,
			Author: models.UserSummary{
				ID:        c.Author.ID,
				Username:  c.Author.Username,
				FirstName: c.Author.FirstName,
				LastName:  c.Author.LastName,
				AvatarURL: c.Author.AvatarURL,
			},
		})
	}
	return previews, models.NewPagination(page, limit, total), nil
}

// DeleteComment soft-deletes a comment. Authors can delete their own
// comments; admins can delete anyone's.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !comment.IsActive {
		return models.NewNotFoundError("Comment")
	}
	if comment.AuthorID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}
	return s.commentRepo.SoftDelete(ctx, commentID, comment.PostID)
}

// notifyComment creates the comment notification best-effort. Commenting on
// your own post never notifies, and a failed insert is logged without
// failing the request.
func (s *CommentService) notifyComment(ctx context.Context, author *models.User, post *models.Post) {
	if post.AuthorID == author.ID {
		return
	}
	postID := post.ID
	n := &models.Notification{
		Recipient: post.AuthorID,
		SenderID:  author.ID,
		Type:      models.NotificationComment,
		PostID:    &postID,
		Message:   fmt.Sprintf("%s commented on your post", author.Username),
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		middleware.Logger.Warn("failed to create comment notification", slog.String("error", err.Error()))
		return
	}
	observability.NotificationsCreated.WithLabelValues(string(models.NotificationComment)).Inc()
}
