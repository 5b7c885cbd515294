package repository

import (
	"context"
	"errors"
	"time"

	"socialconnect/internal/cache"
	"socialconnect/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, int64, error)
	RecentByPostIDs(ctx context.Context, postIDs []uint, perPost int) (map[uint][]models.CommentPreview, error)
	SoftDelete(ctx context.Context, id, postID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment and bumps the post's comment_count in the same
// transaction.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			Update("comment_count", gorm.Expr("comment_count + 1")).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment")
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByPost returns the newest-first page of active comments on a post with
// their author summaries, plus the total active count.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	base := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ? AND is_active = ?", postID, true)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := base.
		Preload("Author").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return comments, total, nil
}

// RecentByPostIDs fetches the active comments for the given posts, newest
// first, and returns at most perPost previews per post. An empty postIDs
// slice short-circuits without touching the database.
func (r *commentRepository) RecentByPostIDs(ctx context.Context, postIDs []uint, perPost int) (map[uint][]models.CommentPreview, error) {
	grouped := make(map[uint][]models.CommentPreview, len(postIDs))
	if len(postIDs) == 0 {
		return grouped, nil
	}

	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id IN ? AND is_active = ?", postIDs, true).
		Order("created_at DESC, id DESC").
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, c := range comments {
		if len(grouped[c.PostID]) >= perPost {
			continue
		}
		grouped[c.PostID] = append(grouped[c.PostID], models.CommentPreview{
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
	return grouped, nil
}

// SoftDelete marks the comment inactive and decrements the post's
// comment_count in the same transaction. The comment row is never removed.
func (r *commentRepository) SoftDelete(ctx context.Context, id, postID uint) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Comment{}).
			Where("id = ? AND is_active = ?", id, true).
			Updates(map[string]any{"is_active": false, "deleted_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Comment")
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Update("comment_count", gorm.Expr("GREATEST(comment_count - 1, 0)")).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}
