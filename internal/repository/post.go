// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"socialconnect/internal/cache"
	"socialconnect/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetActiveByID(ctx context.Context, id uint) (*models.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]models.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, int64, error)
	SearchFeed(ctx context.Context, query string, authorIDs []uint, limit, offset int) ([]models.Post, int64, error)
	ListFiltered(ctx context.Context, f PostFilter, limit, offset int) ([]models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	SoftDelete(ctx context.Context, id, authorID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and bumps the author's posts_count in the same
// transaction.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", post.AuthorID).
			Update("posts_count", gorm.Expr("posts_count + 1")).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, post.AuthorID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// GetActiveByID returns the post only when it has not been soft-deleted.
// Reads go through the post cache; every mutation invalidates the key.
func (r *postRepository) GetActiveByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("id = ? AND is_active = ?", id, true).
			First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByAuthors returns the newest-first page of active posts authored by any
// of authorIDs, plus the total count over the same filter. An empty authorIDs
// slice short-circuits to an empty page without touching the database.
func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]models.Post, int64, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, 0, nil
	}

	var posts []models.Post
	var total int64

	base := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id IN ? AND is_active = ?", authorIDs, true)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := base.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, int64, error) {
	return r.ListByAuthors(ctx, []uint{authorID}, limit, offset)
}

// PostFilter narrows a post listing. A nil Active includes soft-deleted rows,
// which only the moderation listing uses.
type PostFilter struct {
	Category models.PostCategory
	AuthorID uint
	Active   *bool
}

// ListFiltered returns the newest-first page of posts matching the filter,
// plus the total count over the same filter.
func (r *postRepository) ListFiltered(ctx context.Context, f PostFilter, limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Post{})
	if f.Category != "" {
		base = base.Where("category = ?", f.Category)
	}
	if f.AuthorID != 0 {
		base = base.Where("author_id = ?", f.AuthorID)
	}
	if f.Active != nil {
		base = base.Where("is_active = ?", *f.Active)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := base.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

// SearchFeed matches active posts whose content or author name matches the
// query. A nil authorIDs searches across all active authors; a non-nil slice
// restricts results to those authors, and an empty one short-circuits.
func (r *postRepository) SearchFeed(ctx context.Context, query string, authorIDs []uint, limit, offset int) ([]models.Post, int64, error) {
	if authorIDs != nil && len(authorIDs) == 0 {
		return []models.Post{}, 0, nil
	}

	var posts []models.Post
	var total int64
	like := "%" + query + "%"

	base := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.is_active = ? AND users.is_active = ?", true, true).
		Where("posts.content ILIKE ? OR users.username ILIKE ? OR users.first_name ILIKE ? OR users.last_name ILIKE ?",
			like, like, like, like)
	if authorIDs != nil {
		base = base.Where("posts.author_id IN ?", authorIDs)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := base.
		Select("posts.*").
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// SoftDelete marks the post inactive and decrements the author's posts_count
// in the same transaction. The post row is never removed.
func (r *postRepository) SoftDelete(ctx context.Context, id, authorID uint) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Post{}).
			Where("id = ? AND is_active = ?", id, true).
			Updates(map[string]any{"is_active": false, "deleted_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Post")
		}
		return tx.Model(&models.User{}).
			Where("id = ?", authorID).
			Update("posts_count", gorm.Expr("GREATEST(posts_count - 1, 0)")).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidateUser(ctx, authorID)
	return nil
}
