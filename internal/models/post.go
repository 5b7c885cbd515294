// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// PostCategory is the category assigned to a post.
type PostCategory string

const (
	// CategoryGeneral is the default post category.
	CategoryGeneral PostCategory = "general"
	// CategoryAnnouncement marks announcement posts.
	CategoryAnnouncement PostCategory = "announcement"
	// CategoryQuestion marks question posts.
	CategoryQuestion PostCategory = "question"
)

// MaxPostLength is the maximum post content length in characters.
const MaxPostLength = 280

// Post represents a post authored by a user.
// LikeCount and CommentCount are denormalized aggregates updated in the same
// transaction as the like/comment rows they summarize; they are never
// recomputed on read. Soft-deleted posts keep their row with IsActive=false.
type Post struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Content      string       `gorm:"type:varchar(280);not null" json:"content"`
	ImageURL     string       `json:"image_url"`
	Category     PostCategory `gorm:"type:varchar(20);default:'general';index" json:"category"`
	AuthorID     uint         `gorm:"not null;index" json:"author_id"`
	Author       User         `gorm:"foreignKey:AuthorID" json:"-"`
	LikeCount    int          `gorm:"default:0" json:"like_count"`
	CommentCount int          `gorm:"default:0" json:"comment_count"`
	IsActive     bool         `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	DeletedAt    *time.Time   `json:"-"`
}

// ValidCategory reports whether c is one of the known post categories.
func ValidCategory(c PostCategory) bool {
	switch c {
	case CategoryGeneral, CategoryAnnouncement, CategoryQuestion:
		return true
	}
	return false
}

// FeedPost is the strongly typed feed/list projection of a post: the post row
// plus its author summary and the viewer-specific annotations.
type FeedPost struct {
	Post
	AuthorSummary  UserSummary      `json:"author"`
	IsLiked        bool             `json:"is_liked"`
	RecentComments []CommentPreview `json:"recent_comments"`
}

// LikeState is the response payload for like/unlike mutations. The count is
// re-read from storage after the mutation rather than incremented client-side.
type LikeState struct {
	LikeCount int  `json:"like_count"`
	IsLiked   bool `json:"is_liked"`
}
