// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// MaxCommentLength is the maximum comment content length in characters.
const MaxCommentLength = 200

// Comment represents a comment on a post. Soft-deleted comments keep their
// row with IsActive=false and DeletedAt set; they are excluded from all
// default listings.
type Comment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Content   string     `gorm:"type:varchar(200);not null" json:"content"`
	AuthorID  uint       `gorm:"not null;index" json:"author_id"`
	Author    User       `gorm:"foreignKey:AuthorID" json:"-"`
	PostID    uint       `gorm:"not null;index" json:"post_id"`
	Post      Post       `gorm:"foreignKey:PostID" json:"-"`
	IsActive  bool       `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// CommentPreview is the comment projection embedded in feed posts and
// comment listings: the comment plus its author summary.
type CommentPreview struct {
	ID        uint        `json:"id"`
	Content   string      `json:"content"`
	PostID    uint        `json:"post_id"`
	CreatedAt time.Time   `json:"created_at"`
	Author    UserSummary `json:"author"`
}
